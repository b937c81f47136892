package database

import (
	"context"
	"database/sql"

	"github.com/securesite/lead-conversion-job/internal/entity"
)

type ConversionErrorRepository struct {
	DB *sql.DB
}

func NewConversionErrorRepository(db *sql.DB) *ConversionErrorRepository {
	return &ConversionErrorRepository{DB: db}
}

// Insert é append-only. Linhas duplicadas para o mesmo lead em runs
// diferentes são esperadas: cada tentativa falha deixa seu registro.
func (r *ConversionErrorRepository) Insert(ctx context.Context, convErr *entity.ConversionError) error {
	query := `
		INSERT INTO jobs."SF_Leads_Conversion_Errors"
			("SF_LeadId", "SecureSite_ClientId__c", "Created_Date", "Error_Date", "Error_Message")
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		convErr.LeadID,
		nullString(convErr.ClientID),
		convErr.CreatedDate,
		convErr.ErrorDate,
		convErr.Message,
	)

	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

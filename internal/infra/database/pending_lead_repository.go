package database

import (
	"context"
	"database/sql"

	"github.com/securesite/lead-conversion-job/internal/entity"
)

// PendingLeadRepository fala com JOBS.SF_Leads_Pending_Conversion.
// Os nomes de schema/colunas são contrato externo (vêm do integrador BI),
// por isso os identificadores entre aspas.
type PendingLeadRepository struct {
	DB *sql.DB
}

func NewPendingLeadRepository(db *sql.DB) *PendingLeadRepository {
	return &PendingLeadRepository{DB: db}
}

func (r *PendingLeadRepository) FetchPending(ctx context.Context) ([]entity.PendingLead, error) {
	query := `
		SELECT "SF_LeadId", "SecureSite_ClientId__c", "Created_Date"
		FROM jobs."SF_Leads_Pending_Conversion"
		ORDER BY "Created_Date"
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.PendingLead
	for rows.Next() {
		var lead entity.PendingLead
		var clientID sql.NullString

		if err := rows.Scan(&lead.LeadID, &clientID, &lead.CreatedDate); err != nil {
			return nil, err
		}

		lead.ClientID = clientID.String
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Delete é idempotente: zero linhas afetadas não é erro, o que permite
// reexecutar um run interrompido sem efeito colateral.
func (r *PendingLeadRepository) Delete(ctx context.Context, leadID string) error {
	query := `DELETE FROM jobs."SF_Leads_Pending_Conversion" WHERE "SF_LeadId" = $1`

	_, err := r.DB.ExecContext(ctx, query, leadID)
	return err
}

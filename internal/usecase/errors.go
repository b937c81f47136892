package usecase

// DomainError: rejeição de regra de negócio (entrada inválida, estado do
// lead). Não derruba o run.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: falha de infraestrutura (banco, login, metadados). É o
// erro fatal do run: nenhum item foi ou será processado.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

package ports

import "context"

// GateResult é o sinal binário devolvido pelo serviço de moderação de conteúdo
type GateResult string

const (
	GateAccepted GateResult = "accepted"
	GateRejected GateResult = "rejected"
)

// ContentGate define a interface para validação externa de conteúdo.
// A chamada deve ser limitada por timeout; falhas de transporte são
// devolvidas como erro e a política (fail-open/fail-closed) é decidida
// pelo chamador, nunca propagada como falha dura.
type ContentGate interface {
	Validate(ctx context.Context, content string) (GateResult, error)
}

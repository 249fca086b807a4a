package httpadapter

import (
	"net/http"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUpstreamAuth):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrUpstreamRateLimited):
		return http.StatusTooManyRequests
	default:
		// Upstream unavailability, protocol violations and anything
		// unclassified all surface as a plain 500 by contract.
		return http.StatusInternalServerError
	}
}

func clientMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return "Formato de arquivo não suportado. Use .txt ou .pdf."
	case domain.IsKind(err, domain.ErrPayloadTooLarge):
		return "O arquivo excede o tamanho máximo permitido de 10 MB."
	case domain.IsKind(err, domain.ErrDecode):
		return "Não foi possível ler o conteúdo do arquivo enviado."
	case domain.IsKind(err, domain.ErrEmptyDocument), domain.IsKind(err, domain.ErrEmptyContent):
		return "O conteúdo do e-mail não pode estar vazio."
	case domain.IsKind(err, domain.ErrNoContent):
		return "Nenhum conteúdo de e-mail fornecido."
	case domain.IsKind(err, domain.ErrContentTooLong):
		return "O conteúdo do e-mail excede o limite de caracteres permitido."
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "Entrada inválida."
	case domain.IsKind(err, domain.ErrUpstreamAuth):
		return "Serviço de classificação indisponível por falha de configuração."
	case domain.IsKind(err, domain.ErrUpstreamRateLimited):
		return "Limite de requisições ao serviço de classificação atingido. Tente novamente em instantes."
	default:
		return "Erro interno ao processar o e-mail."
	}
}

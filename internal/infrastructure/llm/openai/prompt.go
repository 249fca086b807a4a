package openai

import (
	"fmt"
	"strings"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

// Classification needs a single word back; replies get room for a short
// paragraph with creative variance.
const (
	classifyTemperature = 0.0
	classifyMaxTokens   = 16
	replyTemperature    = 0.7
	replyMaxTokens      = 250
)

// InconclusiveReply is the fixed sentinel returned instead of a generated
// draft when the classification is inconclusive.
const InconclusiveReply = "Não foi possível classificar o e-mail automaticamente. " +
	"Nossa equipe fará a revisão manualmente e retornará em breve."

const classificationSystem = "Você é um classificador de e-mails corporativos. " +
	"Responda com exatamente uma palavra: Produtivo ou Improdutivo."

const replySystem = "Você redige respostas de e-mail curtas, profissionais e cordiais, " +
	"em português, sem cabeçalhos e sem assinaturas."

func buildClassificationMessages(original, normalized string) []chatMessage {
	user := fmt.Sprintf(`Classifique o e-mail abaixo em uma das categorias:
- Produtivo: requer uma ação, resposta ou acompanhamento específico.
- Improdutivo: não requer ação; é apenas informativo ou de cortesia.

E-mail original:
%s

Texto processado:
%s

Responda com exatamente uma palavra: Produtivo ou Improdutivo.`, original, normalized)

	return []chatMessage{
		{Role: "system", Content: classificationSystem},
		{Role: "user", Content: user},
	}
}

func buildReplyMessages(original string, cls domain.Classification) []chatMessage {
	var user string
	if cls == domain.ClassificationProductive {
		user = fmt.Sprintf(`O e-mail abaixo foi classificado como Produtivo. Escreva uma resposta curta e profissional confirmando o recebimento, informando que a solicitação foi encaminhada e incluindo uma estimativa de prazo de retorno.

E-mail:
%s`, original)
	} else {
		user = fmt.Sprintf(`O e-mail abaixo foi classificado como Improdutivo. Escreva uma resposta curta e cordial agradecendo a mensagem e, quando fizer sentido, retribuindo o sentimento expresso.

E-mail:
%s`, original)
	}

	return []chatMessage{
		{Role: "system", Content: replySystem},
		{Role: "user", Content: user},
	}
}

// parseClassification checks the raw answer by case-sensitive substring
// containment, Produtivo before Improdutivo. First match wins; an answer
// containing neither label is reported as unparseable, not as an error.
func parseClassification(answer string) (domain.Classification, bool) {
	switch {
	case strings.Contains(answer, "Produtivo"):
		return domain.ClassificationProductive, true
	case strings.Contains(answer, "Improdutivo"):
		return domain.ClassificationUnproductive, true
	default:
		return "", false
	}
}

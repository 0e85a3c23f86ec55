package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/questionnaire-agent/internal/app/phrasing"
	"github.com/PabloGalante/questionnaire-agent/internal/config"
	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

func TestLLMClientWithoutKeyFallsBackToFixedPhrasing(t *testing.T) {
	ctx := context.Background()
	var comps components

	for _, provider := range []string{"gemini", "openai", "vertex"} {
		t.Run(provider, func(t *testing.T) {
			client := comps.llmClient(ctx, &config.Config{LLMProvider: provider})
			assert.Nil(t, client)

			svc, err := phrasing.NewService(client, phrasing.Config{})
			require.NoError(t, err)

			p := svc.RenderQuestion(ctx, domain.Question{ID: "q1", Text: "Name?"}, false)
			assert.ErrorIs(t, p.Err, phrasing.ErrNoModel)
			assert.Equal(t, "What is your name?", p.Or("What is your name?"))
		})
	}
}

func TestLLMClientMock(t *testing.T) {
	var comps components
	client := comps.llmClient(context.Background(), &config.Config{LLMProvider: "mock"})
	require.NotNil(t, client)
}

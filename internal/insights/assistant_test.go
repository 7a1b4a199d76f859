package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"tally/internal/models"
	"tally/internal/planner"
)

// MockLLM is a mock implementation of the langchaingo model interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func fixtureRepo() *planner.MemoryRepository {
	repo := planner.NewMemoryRepository()
	repo.AddMaterial(models.Material{
		Model:    gorm.Model{ID: 1},
		Name:     "Gildan T-Shirt - Red / M",
		Color:    "red",
		Quantity: 13,
		Unit:     "24 PCS",
		Required: 24,
	})
	return repo
}

func TestProcurementInsightsPassThrough(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "Order more red fabric."}},
	}, nil)

	assistant := NewAssistant(NewLLMGenerator(mockLLM), fixtureRepo())
	response := assistant.ProcurementInsights(context.Background(), "What should I restock?")

	assert.Equal(t, "Order more red fabric.", response)
	mockLLM.AssertExpectations(t)
}

func TestProcurementInsightsIncludesInventoryContext(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.MatchedBy(func(messages []llms.MessageContent) bool {
		if len(messages) != 2 {
			return false
		}
		system, ok := messages[0].Parts[0].(llms.TextContent)
		return ok && messages[0].Role == schema.ChatMessageTypeSystem &&
			strings.Contains(system.Text, "Gildan T-Shirt - Red / M")
	})).Return(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "ok"}},
	}, nil)

	assistant := NewAssistant(NewLLMGenerator(mockLLM), fixtureRepo())
	assistant.ProcurementInsights(context.Background(), "anything")

	mockLLM.AssertExpectations(t)
}

func TestProcurementInsightsDegradesOnProviderError(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	assistant := NewAssistant(NewLLMGenerator(mockLLM), fixtureRepo())
	response := assistant.ProcurementInsights(context.Background(), "What should I restock?")

	assert.Contains(t, response, "I apologize")
	assert.Contains(t, response, "rate limited")
}

func TestProcurementInsightsDegradesWithoutModel(t *testing.T) {
	assistant := NewAssistant(nil, fixtureRepo())
	response := assistant.ProcurementInsights(context.Background(), "hello")
	assert.Contains(t, response, "I apologize")
}

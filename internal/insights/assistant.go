package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tally/internal/planner"
)

const systemPromptHeader = `You are an AI procurement assistant for a T-shirt manufacturing business.
You help with inventory management, demand forecasting, and procurement decisions.

Current inventory data:
`

const systemPromptFooter = `

Provide helpful, actionable insights based on the user's question. Focus on:
- Inventory optimization
- Demand forecasting
- Cost reduction opportunities
- Risk mitigation
- Business continuity planning

Be specific and data-driven in your recommendations.`

// Assistant answers procurement questions by forwarding them to a
// language model together with a snapshot of the current inventory.
// A provider failure never escapes to the caller: the response degrades
// to an apologetic plain-text message instead.
type Assistant struct {
	gen  Generator
	repo planner.Repository
}

// NewAssistant creates an assistant over the given generator and
// repository. A nil generator is allowed and yields degraded responses.
func NewAssistant(gen Generator, repo planner.Repository) *Assistant {
	return &Assistant{gen: gen, repo: repo}
}

type materialContext struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Required int    `json:"required"`
	Color    string `json:"color"`
}

type inventoryContext struct {
	Materials     []materialContext `json:"materials"`
	RecentOrders  int               `json:"recent_orders"`
	TotalProducts int               `json:"total_products"`
	AnalysisDate  string            `json:"analysis_date"`
}

// ProcurementInsights answers a free-form procurement question. The
// returned text is always valid; errors are folded into the message.
func (a *Assistant) ProcurementInsights(ctx context.Context, query string) string {
	if a.gen == nil {
		return degraded(errors.New("no language model configured"))
	}

	system, err := a.buildSystemPrompt(time.Now())
	if err != nil {
		return degraded(err)
	}

	text, err := a.gen.GenerateInsight(ctx, system, query)
	if err != nil {
		return degraded(err)
	}
	return text
}

// buildSystemPrompt assembles the inventory snapshot the model reasons
// over: material stock levels plus recent order volume.
func (a *Assistant) buildSystemPrompt(now time.Time) (string, error) {
	materials, err := a.repo.ListMaterials()
	if err != nil {
		return "", err
	}
	products, err := a.repo.ListProducts()
	if err != nil {
		return "", err
	}
	cutoff := now.AddDate(0, 0, -30)
	orders, err := a.repo.ListOrders(&cutoff)
	if err != nil {
		return "", err
	}

	context := inventoryContext{
		Materials:     make([]materialContext, 0, len(materials)),
		RecentOrders:  len(orders),
		TotalProducts: len(products),
		AnalysisDate:  now.Format(time.RFC3339),
	}
	for _, m := range materials {
		context.Materials = append(context.Materials, materialContext{
			Name:     m.Name,
			Quantity: m.Quantity,
			Unit:     m.Unit,
			Required: m.Required,
			Color:    m.Color,
		})
	}

	data, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", err
	}
	return systemPromptHeader + string(data) + systemPromptFooter, nil
}

func degraded(err error) string {
	return fmt.Sprintf("I apologize, but I'm having trouble accessing the AI service right now. Error: %v", err)
}

package services

import (
	"context"
	"fmt"
	"log"

	"voicebot-backend/internal/models"
)

const defaultAgentName = "Order Taking Agent"

const defaultAgentPrompt = `You are an order-taking voice bot that speaks in clear Hindi. Your job is to take orders from customers.

Instructions:
1. Always speak in clear and simple Hindi
2. Let the customer speak - do not interrupt
3. When customer says something, let them finish completely
4. Listen patiently and understand
5. Collect all information before confirming the order

Order taking process:
1. Say Namaste and ask what they want to order
2. Note the item name
3. Ask for quantity
4. Ask for delivery address
5. Confirm contact number
6. Repeat all order information
7. Ask for confirmation

Remember:
- Speak in short sentences
- Wait for customer response
- Be polite and helpful
- If you don't understand, ask again

Start with: Namaste! Main aapke order mein madad karunga. Aap kya order karna chahte hain?`

type agentUpserter interface {
	UpsertByName(ctx context.Context, agent *models.Agent) (bool, error)
}

// EnsureDefaultAgent idempotently seeds the default order-taking agent. The
// name-keyed upsert makes concurrent startups safe.
func EnsureDefaultAgent(ctx context.Context, agents agentUpserter) error {
	agent := models.NewAgent(models.AgentCreate{
		Name:         defaultAgentName,
		Description:  "Hindi voice bot for taking customer orders",
		SystemPrompt: defaultAgentPrompt,
		Language:     "hindi",
	})

	created, err := agents.UpsertByName(ctx, agent)
	if err != nil {
		return fmt.Errorf("failed to ensure default agent: %w", err)
	}
	if created {
		log.Println("Default order-taking agent created")
	}
	return nil
}

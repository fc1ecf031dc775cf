package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

var (
	aiClient      *openai.Client
	aiInitialized bool
)

// InitAIService initialise le client Azure OpenAI pour les rapports admin.
// Sans credentials, les rapports restent disponibles en chiffres bruts.
func InitAIService() {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")

	if endpoint == "" || apiKey == "" {
		log.Println("⚠️ Service IA désactivé — credentials Azure OpenAI absents")
		aiInitialized = false
		return
	}

	client := openai.NewClient(
		option.WithBaseURL(endpoint),
		option.WithAPIKey(apiKey),
	)
	aiClient = &client

	aiInitialized = true
	log.Println("✅ Service IA initialisé (Azure OpenAI)")
}

// AIEnabled indique si le service IA est utilisable
func AIEnabled() bool {
	return aiInitialized && aiClient != nil
}

const salesReportSystemPrompt = `Tu es un analyste e-commerce pour Mani Electrical, ` +
	`un magasin de matériel électrique. À partir des chiffres de vente fournis, ` +
	`rédige un résumé de gestion concis en français : tendances, produits phares, ` +
	`points d'attention. Maximum 200 mots.`

// SummarizeSalesReport génère un résumé IA d'un rapport de ventes
func SummarizeSalesReport(ctx context.Context, reportJSON string) (string, error) {
	if !AIEnabled() {
		return "", fmt.Errorf("service IA non activé")
	}

	deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")
	if deployment == "" {
		deployment = "gpt-35-turbo"
	}

	resp, err := aiClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(salesReportSystemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(reportJSON),
					},
				},
			},
		},
		MaxTokens:   openai.Int(800),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		log.Printf("❌ Erreur API IA: %v", err)
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("réponse IA vide")
	}

	return resp.Choices[0].Message.Content, nil
}

// Package ai generates styling and travel advice through an
// OpenAI-compatible chat completion endpoint.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"guardianclima/internal/model"
	"guardianclima/internal/weather"
)

const (
	adviceModel = "gemini-2.0-flash"
	outfitModel = "gemini-2.5-flash-lite-preview-06-17"
	travelModel = "gemini-2.5-flash-lite-preview-06-17"

	adviceMaxTokens = 600
	outfitMaxTokens = 600
	travelMaxTokens = 1000

	outfitSystemPrompt = "Sos un asistente de estilo y moda profesional. Analiza las prendas de las imágenes para tus recomendaciones."
	travelSystemPrompt = "Eres un asistente de viajes y experto en planificación de equipaje."
)

// ErrGenerationFailed is returned when the provider errors out or returns
// an empty completion. Callers must not record empty advice.
var ErrGenerationFailed = errors.New("advice generation failed")

// Image is a validated client-supplied garment photo ready to be attached
// to a generation request.
type Image struct {
	Data   []byte
	Format string // "jpeg", "png", ...
}

// Advisor generates advice texts from weather and user preferences.
type Advisor interface {
	TextAdvice(ctx context.Context, user *model.User, snap *weather.Snapshot) (string, error)
	OutfitAdvice(ctx context.Context, user *model.User, city string, snap *weather.Snapshot, images []Image) (string, error)
	TravelAdvice(ctx context.Context, user *model.User, city, startDate, endDate string, snap *weather.Snapshot) (string, error)
}

// Client is a chat-completion backed Advisor.
type Client struct {
	api *openai.Client
}

// NewClient builds an Advisor against an OpenAI-compatible endpoint such
// as Gemini's. baseURL selects the provider; apiKey authenticates.
func NewClient(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// TextAdvice builds a single-paragraph styling recommendation from the
// user's ten preference fields plus current conditions.
func (c *Client) TextAdvice(ctx context.Context, user *model.User, snap *weather.Snapshot) (string, error) {
	prompt := fmt.Sprintf(
		"Actúa como un asistente de moda y estilo de vida personal. "+
			"El usuario tiene las siguientes preferencias: "+
			"Estilo: '%s', Actividad principal del día: '%s', Sensibilidad al frío: '%s', "+
			"Colores preferidos: '%s', Preferencia de clima: '%s', Frecuencia de viajes: '%s', "+
			"Tipo de calzado preferido: '%s', Frecuencia de ejercicio físico: '%s', "+
			"Preferencia de tejidos: '%s', Prenda favorita: '%s'.\n"+
			"El clima actual es: Condición: %s, Temperatura: %.1f°C, "+
			"Sensación térmica: %.1f°C, Humedad: %d%%.\n"+
			"Basado en TODA esta información (preferencias del usuario Y el clima), "+
			"genera una recomendación de vestimenta breve, práctica y con estilo en un solo párrafo. "+
			"Dirígete al usuario de forma amigable y directa. Por ejemplo, si su sensibilidad al frío es alta, "+
			"sugiérele una capa extra. Si su estilo es elegante, recomienda prendas más formales. "+
			"Responde únicamente con la recomendación.",
		user.PreferredStyle, user.MainActivity, user.ColdSensitivity,
		user.PreferredColors, user.ClimatePreference, user.TravelFrequency,
		user.FootwearType, user.ExerciseFrequency,
		user.FabricPreference, user.FavoriteGarment,
		snap.Description, snap.TempC, snap.FeelsLikeC, snap.HumidityPct,
	)

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:     adviceModel,
		MaxTokens: adviceMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

// OutfitAdvice sends the user's garment photos together with a structured
// prompt and returns an outfit recommendation broken into sections (top,
// bottom, footwear, layers, accessories). Rich-text markup is forbidden
// by prompt instruction only; the output is not validated.
func (c *Client) OutfitAdvice(ctx context.Context, user *model.User, city string, snap *weather.Snapshot, images []Image) (string, error) {
	prompt := fmt.Sprintf(
		"Basándote en las prendas identificadas en las imágenes, "+
			"el clima actual en %s "+
			"(Temperatura: %.1f°C, Sensación térmica: %.1f°C, Humedad: %d%%, Descripción: %s), "+
			"y las preferencias del usuario (Estilo: %s, Actividad: %s, Sensibilidad al frío: %s, "+
			"Colores Preferidos: %s, Preferencia de Clima: %s, Frecuencia de Viajes: %s, "+
			"Tipo de Calzado Preferido: %s, Frecuencia de Ejercicio Físico: %s, "+
			"Preferencia de Tejidos: %s, Prenda Favorita: %s), "+
			"genera una recomendación de vestimenta estructurada.\n\n"+
			"Tu recomendación debe incluir las siguientes secciones:\n"+
			"- Parte de arriba:\n"+
			"- Parte de abajo:\n"+
			"- Calzado:\n"+
			"- Capas adicionales (si aplica):\n"+
			"- Accesorios relevantes (si aplica):\n\n"+
			"Para cada prenda o accesorio sugerido, incluye una descripción muy breve de sus características "+
			"(ej. 'camiseta blanca de algodón', 'pantalón vaquero oscuro', 'zapatillas deportivas') "+
			"para que el usuario pueda identificarla en sus fotos. "+
			"Enfócate en un atuendo práctico y con estilo. NO USES LETRAS NEGRITAS, ASTERISCOS, NI HTML TAGS.",
		city, snap.TempC, snap.FeelsLikeC, snap.HumidityPct, snap.Description,
		user.PreferredStyle, user.MainActivity, user.ColdSensitivity,
		user.PreferredColors, user.ClimatePreference, user.TravelFrequency,
		user.FootwearType, user.ExerciseFrequency,
		user.FabricPreference, user.FavoriteGarment,
	)

	parts := make([]openai.ChatMessagePart, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:image/%s;base64,%s", img.Format, base64.StdEncoding.EncodeToString(img.Data)),
			},
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: prompt,
	})

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:     outfitModel,
		MaxTokens: outfitMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: outfitSystemPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
}

// TravelAdvice builds a packing list for a trip, organized by category,
// from the destination's current conditions and the user's preferences.
func (c *Client) TravelAdvice(ctx context.Context, user *model.User, city, startDate, endDate string, snap *weather.Snapshot) (string, error) {
	prompt := fmt.Sprintf(
		"Actúa como un asistente de viaje experto y conciso. Tu tarea es crear una lista de equipaje inteligente y detallada.\n\n"+
			"Destino: %s\n"+
			"Fechas del viaje: del %s al %s\n\n"+
			"Preferencias del usuario:\n"+
			"- Estilo preferido: %s\n"+
			"- Actividad principal planeada: %s\n"+
			"- Sensibilidad al frío: %s\n"+
			"- Colores preferidos: %s\n"+
			"- Preferencia de clima: %s\n"+
			"- Frecuencia de viajes: %s\n"+
			"- Tipo de calzado preferido: %s\n"+
			"- Frecuencia de ejercicio físico: %s\n"+
			"- Preferencia de tejidos: %s\n"+
			"- Prenda favorita: %s\n\n"+
			"Clima actual en %s:\n"+
			"Temperatura: %.1f°C\n"+
			"Sensación térmica: %.1f°C\n"+
			"Humedad: %d%%\n"+
			"Descripción del clima: %s\n\n"+
			"Basándote en toda esta información, genera una lista de equipaje organizada por categorías "+
			"(ej. Ropa, Calzado, Accesorios, Artículos de Aseo, Documentos).\n"+
			"Para cada prenda o artículo, sé específico (ej. '2 camisetas de algodón de manga corta', "+
			"'1 par de zapatillas cómodas para caminar', '1 chaqueta impermeable ligera').\n"+
			"Añade una sección final con 2 o 3 consejos prácticos para el viaje basados en el clima y el destino.\n\n"+
			"El resultado debe ser una lista fácil de leer y accionable para el usuario.\n"+
			"NO USES LETRAS NEGRITAS EN LAS RESPUESTAS, NO USES ASTERISCOS, NO USES HTML TAGS.\n",
		city, startDate, endDate,
		user.PreferredStyle, user.MainActivity, user.ColdSensitivity,
		user.PreferredColors, user.ClimatePreference, user.TravelFrequency,
		user.FootwearType, user.ExerciseFrequency,
		user.FabricPreference, user.FavoriteGarment,
		city, snap.TempC, snap.FeelsLikeC, snap.HumidityPct, snap.Description,
	)

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:     travelModel,
		MaxTokens: travelMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: travelSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

// complete runs a single blocking completion. No retries, no streaming.
func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrGenerationFailed
	}
	return resp.Choices[0].Message.Content, nil
}

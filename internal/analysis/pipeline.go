package analysis

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agrocampo/api/internal/assistant"
	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/storage"
)

// Upload is the image payload handed to the pipeline: either a stream
// from a multipart form or a base64 string, never both.
type Upload struct {
	Name   string
	Reader io.Reader
	Base64 string
}

// Service runs the two-stage plant diagnosis pipeline
type Service interface {
	Analyze(ctx context.Context, upload Upload, input domain.AnalysisInput) (domain.AnalysisResult, error)
}

type service struct {
	bucket *storage.Bucket
	client assistant.Client
}

// NewService creates a new analysis service
func NewService(bucket *storage.Bucket, client assistant.Client) Service {
	return &service{bucket: bucket, client: client}
}

// Analyze stores the image, then asks the model for a diagnosis. The
// two stages fail with distinct sentinels so the handler can tell the
// producer which half went wrong.
func (s *service) Analyze(ctx context.Context, upload Upload, input domain.AnalysisInput) (domain.AnalysisResult, error) {
	log := logger.FromContext(ctx)

	imageURL, err := s.storeImage(ctx, upload)
	if err != nil {
		log.Error("analysis upload stage failed", "error", err)
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	input.ImageURL = imageURL

	reply, err := s.client.ChatCompletion(ctx, []assistant.Message{
		{Role: "system", Content: analysisPersona},
		{Role: "user", Content: renderAnalysisPrompt(input)},
	})
	if err != nil {
		log.Error("analysis model stage failed", "image_url", imageURL, "error", err)
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	return domain.AnalysisResult{ImageURL: imageURL, Analysis: reply}, nil
}

func (s *service) storeImage(ctx context.Context, upload Upload) (string, error) {
	if upload.Reader != nil {
		return s.bucket.Save(ctx, upload.Name, upload.Reader)
	}
	if upload.Base64 != "" {
		return s.bucket.SaveBase64(ctx, upload.Name, upload.Base64)
	}
	return "", fmt.Errorf("%w: no image payload", domain.ErrInvalidInput)
}

const analysisPersona = "Você é um fitopatologista que diagnostica problemas em plantas a partir de " +
	"descrições e imagens. Aponte as causas prováveis e recomende próximos passos práticos."

func renderAnalysisPrompt(input domain.AnalysisInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analise a seguinte ocorrência em lavoura.\n")
	fmt.Fprintf(&b, "Imagem: %s\n", input.ImageURL)
	fmt.Fprintf(&b, "Cultura: %s\n", input.Culture)
	fmt.Fprintf(&b, "Sintomas: %s\n", input.Symptoms)
	if input.AffectedArea != "" {
		fmt.Fprintf(&b, "Área afetada: %s\n", input.AffectedArea)
	}
	if input.TimeFrame != "" {
		fmt.Fprintf(&b, "Há quanto tempo: %s\n", input.TimeFrame)
	}
	if input.RecentProducts != "" {
		fmt.Fprintf(&b, "Produtos aplicados recentemente: %s\n", input.RecentProducts)
	}
	if input.WeatherChanges != "" {
		fmt.Fprintf(&b, "Mudanças no clima: %s\n", input.WeatherChanges)
	}
	if input.Location != "" {
		fmt.Fprintf(&b, "Localização: %s\n", input.Location)
	}
	return b.String()
}

package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
)

// DocAI extracts text with a Google Document AI OCR processor. Used for
// PDF and scanned uploads in online mode.
type DocAI struct {
	log       *logger.Logger
	client    *documentai.DocumentProcessorClient
	processor string
	timeout   time.Duration
}

type DocAIConfig struct {
	ProjectID   string
	Location    string // "us", "eu", ...
	ProcessorID string
}

func NewDocAI(ctx context.Context, log *logger.Logger, cfg DocAIConfig, opts ...option.ClientOption) (*DocAI, error) {
	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, errors.New("docai project id and processor id required")
	}
	location := cfg.Location
	if location == "" {
		location = "us"
	}
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	client, err := documentai.NewDocumentProcessorClient(ctx, append([]option.ClientOption{option.WithEndpoint(endpoint)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}
	log.Info("document ai extractor initialized", "endpoint", endpoint, "processor", cfg.ProcessorID)
	return &DocAI{
		log:       log.With("service", "extract.DocAI"),
		client:    client,
		processor: fmt.Sprintf("projects/%s/locations/%s/processors/%s", cfg.ProjectID, location, cfg.ProcessorID),
		timeout:   3 * time.Minute,
	}, nil
}

func (d *DocAI) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file")
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: d.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mimeType,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("documentai ProcessDocument: %w", err)
	}
	if resp == nil || resp.Document == nil {
		return "", errors.New("documentai returned no document")
	}
	text := strings.TrimSpace(resp.Document.GetText())
	if text == "" {
		return "", errors.New("documentai returned no text")
	}
	return text, nil
}

func (d *DocAI) Close() error { return d.client.Close() }

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// TextractEngine is the slower secondary recognizer, backed by AWS Textract.
// The client is expensive to set up, so one engine is constructed at process
// start and reused for the process lifetime. Construction failure is expected
// to degrade the chain to primary-only rather than abort startup.
type TextractEngine struct {
	client        *textract.Client
	minConfidence float32
}

type TextractConfig struct {
	Region        string
	AccessKey     string
	SecretKey     string
	MinConfidence float32
}

func NewTextractEngine(ctx context.Context, cfg *TextractConfig) (*TextractEngine, error) {
	if cfg.Region == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("textract credentials not configured")
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &TextractEngine{
		client:        textract.NewFromConfig(awsCfg),
		minConfidence: cfg.MinConfidence,
	}, nil
}

func (e *TextractEngine) Name() string { return "textract" }

// Recognize sends the image to Textract and joins the detected line blocks
// with single spaces, in the order the service returns them.
func (e *TextractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	result, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: buf.Bytes()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to analyze image: %w", err)
	}

	return joinLineBlocks(result.Blocks, e.minConfidence), nil
}

// joinLineBlocks keeps LINE blocks above the confidence floor and joins their
// text with single spaces, in service order.
func joinLineBlocks(blocks []types.Block, minConfidence float32) string {
	var fragments []string
	for _, block := range blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		if block.Confidence != nil && *block.Confidence < minConfidence {
			continue
		}
		fragments = append(fragments, *block.Text)
	}
	return strings.Join(fragments, " ")
}

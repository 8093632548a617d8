package config

import (
	"strconv"
	"strings"
	"sync"
)

var (
	ocrOnce   sync.Once
	ocrConfig *OCRConfig
)

// OCRConfig covers both recognizers: Tesseract (primary) and AWS Textract
// (secondary). Empty AWS fields mean the secondary engine stays disabled.
type OCRConfig struct {
	Languages     []string
	Region        string
	AccessKey     string
	SecretKey     string
	MinConfidence float32
}

func GetOCRConfig() *OCRConfig {
	ocrOnce.Do(func() {
		loadEnv()
		minConf := 80.0
		if v, err := strconv.ParseFloat(getenv("OCR_MIN_CONFIDENCE", "80"), 32); err == nil {
			minConf = v
		}
		ocrConfig = &OCRConfig{
			Languages:     strings.Split(getenv("TESSERACT_LANGUAGES", "eng"), "+"),
			Region:        getenv("AWS_REGION", ""),
			AccessKey:     getenv("AWS_ACCESS_KEY", ""),
			SecretKey:     getenv("AWS_SECRET_KEY", ""),
			MinConfidence: float32(minConf),
		}
	})
	return ocrConfig
}

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used for the forms.
const DefaultLanguage = "spa"

// Word is one recognized word with its location in the transcribed image.
type Word struct {
	Text string `json:"text"`

	// Confidence is the recognition confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	Bounds image.Rectangle `json:"bounds"`
}

// Transcription is the text recognized in one image.
type Transcription struct {
	// Text is the recognized text with surrounding whitespace trimmed.
	Text string `json:"text"`

	// Words may be empty when word boxes could not be extracted even if
	// Text is not.
	Words []Word `json:"words"`
}

// Transcriber runs Tesseract on field crops.
type Transcriber struct {
	Language string
}

// NewTranscriber returns a Transcriber for language, or DefaultLanguage
// when language is empty.
func NewTranscriber(language string) *Transcriber {
	if language == "" {
		language = DefaultLanguage
	}
	return &Transcriber{Language: language}
}

// Transcribe recognizes the text in img along with word boxes.
func (t *Transcriber) Transcribe(img image.Image) (*Transcription, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	result := &Transcription{Text: strings.TrimSpace(text), Words: []Word{}}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     box.Box,
		})
	}
	return result, nil
}

// ReadText returns only the recognized text of img.
func (t *Transcriber) ReadText(img image.Image) (string, error) {
	res, err := t.Transcribe(img)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

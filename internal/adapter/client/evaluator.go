package client

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiJudge asks a model whether a prediction amounts to a likely snow day.
type GeminiJudge struct {
	client    *genai.Client
	model     string
	threshold int
}

func NewGeminiJudge(client *genai.Client, model string, threshold int) *GeminiJudge {
	return &GeminiJudge{client: client, model: model, threshold: threshold}
}

func (j *GeminiJudge) IsLikely(ctx context.Context, prediction string) (bool, error) {
	resp, err := j.client.Models.GenerateContent(ctx, j.model, genai.Text(JudgePrompt(prediction, j.threshold)), nil)
	if err != nil {
		return false, classifyError(err)
	}
	return ParseVerdict(resp.Text())
}

// JudgePrompt asks for a strict True/False verdict.
func JudgePrompt(prediction string, threshold int) string {
	return fmt.Sprintf(`Analyze the following message and respond with ONLY the word "True" or "False".
Tell me if there is a greater than or equal to %d%% chance of a snow day. Here is the message:

%s`, threshold, prediction)
}

// ParseVerdict reads a True/False (or YES/NO) answer.
func ParseVerdict(answer string) (bool, error) {
	normalized := strings.Trim(strings.ToLower(strings.TrimSpace(answer)), `."'`)
	switch normalized {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("unexpected verdict %q", answer)
}

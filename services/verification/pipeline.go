// File: urbanserve/services/verification/pipeline.go
package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"urbanserve/utils"

	"go.uber.org/zap"
)

// Decision thresholds. An explicit approval flag in the oracle reply takes
// precedence over these rules.
const (
	IdentityConfidenceThreshold = 0.70
	QualificationMinScore       = 60
	SkillMinScore               = 60
)

const defaultTimeout = 30 * time.Second

// IdentityResult is the outcome of worker identity verification. Raw holds
// the oracle's verbatim output (or the failure string) for the audit log.
type IdentityResult struct {
	Approved   bool
	Confidence float64
	Reason     string
	Raw        string
}

// TutorResult is the outcome of tutor qualification evaluation.
type TutorResult struct {
	QualificationScore int
	SkillScore         int
	Approved           bool
	Reason             string
	ProfileSummary     string
	Raw                string
}

// Service runs the verification pipelines against a scoring oracle. Both
// pipelines are fail-closed: any oracle failure (error, timeout, non-JSON
// body) yields a rejection, never a panic or an error to the caller.
type Service struct {
	Oracle  ScoringOracle
	Timeout time.Duration
}

func NewService(oracle ScoringOracle, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{Oracle: oracle, Timeout: timeout}
}

// VerifyIdentity evaluates a worker's identity evidence. Approval defaults
// to confidence >= 0.70 unless the oracle supplies an explicit approved
// flag, which wins.
func (s *Service) VerifyIdentity(ctx context.Context, hasDocument bool, documentRef string) IdentityResult {
	docLabel := documentRef
	if docLabel == "" {
		docLabel = "N/A"
	}
	prompt := fmt.Sprintf(`You are an AI identity verification agent. Evaluate the following:
- ID document provided: %t
- Document reference (for context): %s

Return ONLY valid JSON with exactly these keys (no markdown, no extra text):
{
  "confidence": <float 0.0 to 1.0>,
  "approved": <true if confidence >= 0.7 else false>,
  "reason": "<short one-line explanation>"
}`, hasDocument, docLabel)

	raw, err := s.judge(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("identity verification oracle failed", zap.Error(err))
		return IdentityResult{
			Approved:   false,
			Confidence: 0.0,
			Reason:     fmt.Sprintf("AI verification failed: %v", err),
			Raw:        err.Error(),
		}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		utils.GetLogger().Warn("identity verification returned non-JSON payload", zap.Error(err))
		return IdentityResult{
			Approved:   false,
			Confidence: 0.0,
			Reason:     fmt.Sprintf("AI verification failed: %v", err),
			Raw:        raw,
		}
	}

	confidence := asFloat(payload["confidence"])
	approved := confidence >= IdentityConfidenceThreshold
	if v, ok := payload["approved"]; ok {
		approved = asBool(v)
	}
	return IdentityResult{
		Approved:   approved,
		Confidence: confidence,
		Reason:     asString(payload["reason"]),
		Raw:        raw,
	}
}

// EvaluateTutor evaluates a tutor application. Approval defaults to both
// scores >= 60 unless the oracle supplies an explicit approval flag; the
// explicit flag wins even when it contradicts the score rule (intentional
// policy passthrough).
func (s *Service) EvaluateTutor(ctx context.Context, qualificationText, experienceText, demoTranscript string) TutorResult {
	prompt := fmt.Sprintf(`You are an AI tutor evaluation agent. Evaluate this tutor application.

QUALIFICATION TEXT:
%s

EXPERIENCE DESCRIPTION:
%s

DEMO TEACHING TRANSCRIPT:
%s

Return ONLY valid JSON with exactly these keys (no markdown, no extra text):
{
  "qualification_score": <integer 0-100>,
  "skill_score": <integer 0-100>,
  "approval": <true if both scores >= 60 else false>,
  "reason": "<short one-line explanation>",
  "profile_summary": "<2-3 sentences for users, summarizing the tutor's strengths>"
}

Rules: qualification_score < 60 or skill_score < 60 must result in approval: false.`,
		orNotProvided(qualificationText), orNotProvided(experienceText), orNotProvided(demoTranscript))

	raw, err := s.judge(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("tutor evaluation oracle failed", zap.Error(err))
		return TutorResult{
			Approved: false,
			Reason:   fmt.Sprintf("AI evaluation failed: %v", err),
			Raw:      err.Error(),
		}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		utils.GetLogger().Warn("tutor evaluation returned non-JSON payload", zap.Error(err))
		return TutorResult{
			Approved: false,
			Reason:   fmt.Sprintf("AI evaluation failed: %v", err),
			Raw:      raw,
		}
	}

	qScore := int(asFloat(payload["qualification_score"]))
	sScore := int(asFloat(payload["skill_score"]))
	approved := qScore >= QualificationMinScore && sScore >= SkillMinScore
	if v, ok := payload["approval"]; ok {
		approved = asBool(v)
	}
	return TutorResult{
		QualificationScore: qScore,
		SkillScore:         sScore,
		Approved:           approved,
		Reason:             asString(payload["reason"]),
		ProfileSummary:     asString(payload["profile_summary"]),
		Raw:                raw,
	}
}

// judge runs one oracle call under the configured timeout. A timeout is an
// oracle failure like any other.
func (s *Service) judge(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Oracle.Judge(ctx, prompt)
}

func orNotProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

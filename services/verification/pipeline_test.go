package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	reply string
	err   error
}

func (f fakeOracle) Judge(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

// blockingOracle never answers; only the caller's deadline ends the call.
type blockingOracle struct{}

func (blockingOracle) Judge(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestVerifyIdentity_ThresholdApproval(t *testing.T) {
	svc := NewService(fakeOracle{reply: `{"confidence": 0.9, "reason": "clear document"}`}, 0)
	res := svc.VerifyIdentity(context.Background(), true, "doc-ref")
	require.True(t, res.Approved)
	require.Equal(t, 0.9, res.Confidence)
	require.Equal(t, "clear document", res.Reason)
}

func TestVerifyIdentity_ThresholdBoundary(t *testing.T) {
	svc := NewService(fakeOracle{reply: `{"confidence": 0.7}`}, 0)
	require.True(t, svc.VerifyIdentity(context.Background(), true, "ref").Approved)

	svc = NewService(fakeOracle{reply: `{"confidence": 0.5}`}, 0)
	require.False(t, svc.VerifyIdentity(context.Background(), true, "ref").Approved)
}

func TestVerifyIdentity_ExplicitFlagOverridesThreshold(t *testing.T) {
	// The oracle's own verdict wins in both directions.
	svc := NewService(fakeOracle{reply: `{"confidence": 0.9, "approved": false}`}, 0)
	require.False(t, svc.VerifyIdentity(context.Background(), true, "ref").Approved)

	svc = NewService(fakeOracle{reply: `{"confidence": 0.2, "approved": true}`}, 0)
	require.True(t, svc.VerifyIdentity(context.Background(), true, "ref").Approved)
}

func TestVerifyIdentity_OracleErrorFailsClosed(t *testing.T) {
	svc := NewService(fakeOracle{err: errors.New("upstream down")}, 0)
	res := svc.VerifyIdentity(context.Background(), true, "ref")
	require.False(t, res.Approved)
	require.Equal(t, 0.0, res.Confidence)
	require.Contains(t, res.Reason, "AI verification failed")
	require.Contains(t, res.Raw, "upstream down")
}

func TestVerifyIdentity_TimeoutFailsClosed(t *testing.T) {
	svc := NewService(blockingOracle{}, 20*time.Millisecond)
	res := svc.VerifyIdentity(context.Background(), true, "ref")
	require.False(t, res.Approved)
	require.Contains(t, res.Reason, "AI verification failed")
}

func TestVerifyIdentity_NonJSONFailsClosed(t *testing.T) {
	raw := "I think this person looks trustworthy."
	svc := NewService(fakeOracle{reply: raw}, 0)
	res := svc.VerifyIdentity(context.Background(), true, "ref")
	require.False(t, res.Approved)
	// The unparseable body is preserved verbatim for the audit log.
	require.Equal(t, raw, res.Raw)
}

func TestVerifyIdentity_FencedJSONIsAccepted(t *testing.T) {
	reply := "```json\n{\"confidence\": 0.95, \"reason\": \"ok\"}\n```"
	svc := NewService(fakeOracle{reply: reply}, 0)
	res := svc.VerifyIdentity(context.Background(), true, "ref")
	require.True(t, res.Approved)
	require.Equal(t, reply, res.Raw)
}

func TestEvaluateTutor_ScoreRule(t *testing.T) {
	svc := NewService(fakeOracle{reply: `{"qualification_score": 80, "skill_score": 80, "reason": "solid", "profile_summary": "Experienced tutor."}`}, 0)
	res := svc.EvaluateTutor(context.Background(), "MSc", "5 years", "transcript")
	require.True(t, res.Approved)
	require.Equal(t, 80, res.QualificationScore)
	require.Equal(t, 80, res.SkillScore)
	require.Equal(t, "Experienced tutor.", res.ProfileSummary)
}

func TestEvaluateTutor_BothScoresMustPass(t *testing.T) {
	svc := NewService(fakeOracle{reply: `{"qualification_score": 50, "skill_score": 90}`}, 0)
	require.False(t, svc.EvaluateTutor(context.Background(), "q", "e", "d").Approved)

	svc = NewService(fakeOracle{reply: `{"qualification_score": 90, "skill_score": 59}`}, 0)
	require.False(t, svc.EvaluateTutor(context.Background(), "q", "e", "d").Approved)

	svc = NewService(fakeOracle{reply: `{"qualification_score": 60, "skill_score": 60}`}, 0)
	require.True(t, svc.EvaluateTutor(context.Background(), "q", "e", "d").Approved)
}

func TestEvaluateTutor_ExplicitApprovalOverridesScores(t *testing.T) {
	svc := NewService(fakeOracle{reply: `{"qualification_score": 10, "skill_score": 10, "approval": true}`}, 0)
	res := svc.EvaluateTutor(context.Background(), "q", "e", "d")
	require.True(t, res.Approved)
	require.Equal(t, 10, res.QualificationScore)
}

func TestEvaluateTutor_OracleErrorFailsClosed(t *testing.T) {
	svc := NewService(fakeOracle{err: errors.New("boom")}, 0)
	res := svc.EvaluateTutor(context.Background(), "q", "e", "d")
	require.False(t, res.Approved)
	require.Zero(t, res.QualificationScore)
	require.Contains(t, res.Reason, "AI evaluation failed")
}

func TestDisabledOracleFailsClosed(t *testing.T) {
	svc := NewService(DisabledOracle{}, 0)
	res := svc.VerifyIdentity(context.Background(), true, "ref")
	require.False(t, res.Approved)
	require.Contains(t, res.Raw, "GEMINI_API_KEY")
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"  ```json\n{\"a\":1}\n```  ":    `{"a":1}`,
		"no fences here, just an answer.": "no fences here, just an answer.",
	}
	for in, want := range cases {
		require.Equal(t, want, stripCodeFence(in), "input %q", in)
	}
}

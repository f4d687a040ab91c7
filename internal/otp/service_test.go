package otp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emart-gateway/internal/downstream/orderproc"
	"emart-gateway/internal/otp/store"
	dErrors "emart-gateway/pkg/domain-errors"
)

type stubValidator struct {
	result *orderproc.UserValidation
	err    error
	calls  int
}

func (v *stubValidator) ValidateUser(ctx context.Context, creds orderproc.Credentials) (*orderproc.UserValidation, error) {
	v.calls++
	return v.result, v.err
}

type recordingSender struct {
	to      string
	subject string
	body    string
	err     error
	calls   int
}

func (s *recordingSender) Send(ctx context.Context, to, subject, body string) error {
	s.calls++
	s.to, s.subject, s.body = to, subject, body
	return s.err
}

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestService(validator *stubValidator, sender *recordingSender) *Service {
	return New(store.NewInMemory(), validator, sender, WithLogger(discard()))
}

func TestIssueThenVerifyExactlyOnce(t *testing.T) {
	validator := &stubValidator{result: &orderproc.UserValidation{Status: "success", Email: "alice@example.com"}}
	sender := &recordingSender{}
	svc := newTestService(validator, sender)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "u1", "pass123"))

	assert.Equal(t, "alice@example.com", sender.to)
	assert.Equal(t, "Your eMart OTP", sender.subject)
	code := codePattern.FindString(sender.body)
	require.Len(t, code, 6, "mail body must carry the 6-digit code")

	require.NoError(t, svc.Verify(ctx, "u1", code))

	err := svc.Verify(ctx, "u1", code)
	require.Error(t, err, "a code is one-time use")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestIssueRejectsBadCredentials(t *testing.T) {
	validator := &stubValidator{result: &orderproc.UserValidation{Status: "failed"}}
	sender := &recordingSender{}
	svc := newTestService(validator, sender)

	err := svc.Issue(context.Background(), "u1", "wrong")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Zero(t, sender.calls, "no mail on rejected credentials")
}

func TestIssueRequiresRegisteredEmail(t *testing.T) {
	validator := &stubValidator{result: &orderproc.UserValidation{Status: "success"}}
	sender := &recordingSender{}
	svc := newTestService(validator, sender)

	err := svc.Issue(context.Background(), "u1", "pass123")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Zero(t, sender.calls)
}

func TestIssueMissingFields(t *testing.T) {
	validator := &stubValidator{}
	svc := newTestService(validator, &recordingSender{})

	err := svc.Issue(context.Background(), "", "pass123")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Zero(t, validator.calls, "validation happens before any collaborator call")

	err = svc.Issue(context.Background(), "u1", "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestIssueMapsDeliveryFailure(t *testing.T) {
	validator := &stubValidator{result: &orderproc.UserValidation{Status: "success", Email: "alice@example.com"}}
	sender := &recordingSender{err: errors.New("smtp: connection reset")}
	svc := newTestService(validator, sender)

	err := svc.Issue(context.Background(), "u1", "pass123")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDeliveryFailed))
}

func TestIssuePropagatesValidatorTransportFailure(t *testing.T) {
	validator := &stubValidator{err: dErrors.New(dErrors.CodeUnavailable, "order-processor unreachable")}
	svc := newTestService(validator, &recordingSender{})

	err := svc.Issue(context.Background(), "u1", "pass123")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestReissueOverwritesPriorCode(t *testing.T) {
	validator := &stubValidator{result: &orderproc.UserValidation{Status: "success", Email: "alice@example.com"}}
	sender := &recordingSender{}
	svc := newTestService(validator, sender)
	svc.generate = sequenceGenerator("111111", "222222")
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "u1", "pass123"))
	require.NoError(t, svc.Issue(ctx, "u1", "pass123"))

	err := svc.Verify(ctx, "u1", "111111")
	require.Error(t, err, "the overwritten code must be dead")

	require.NoError(t, svc.Verify(ctx, "u1", "222222"))
}

func TestVerifyMissingFields(t *testing.T) {
	svc := newTestService(&stubValidator{}, &recordingSender{})

	for _, args := range [][2]string{{"", "123456"}, {"u1", ""}} {
		err := svc.Verify(context.Background(), args[0], args[1])
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestVerifyNeverIssuedCode(t *testing.T) {
	svc := newTestService(&stubValidator{}, &recordingSender{})

	err := svc.Verify(context.Background(), "u1", "123456")

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestVerifyDoesNotTouchOtherSubjects(t *testing.T) {
	validator := &stubValidator{result: &orderproc.UserValidation{Status: "success", Email: "alice@example.com"}}
	sender := &recordingSender{}
	svc := newTestService(validator, sender)
	svc.generate = sequenceGenerator("111111", "222222")
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "u1", "pass123"))
	require.NoError(t, svc.Issue(ctx, "u2", "pass123"))

	require.Error(t, svc.Verify(ctx, "u2", "111111"), "u1's code must not verify u2")
	require.NoError(t, svc.Verify(ctx, "u1", "111111"), "failed attempt elsewhere must not consume u1's code")
}

func TestGenerateCodeShape(t *testing.T) {
	for range 100 {
		code, err := generateCode()
		require.NoError(t, err)
		require.Regexp(t, `^\d{6}$`, code)
		assert.NotEqual(t, byte('0'), code[0], "codes are drawn from 100000-999999")
	}
}

func sequenceGenerator(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}

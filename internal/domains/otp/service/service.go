package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/otp/model"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/metrics"
	"salon/shared/password"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultLength      = 6
	defaultTTLSeconds  = 300
	defaultMaxAttempts = 5
)

type OTP interface {
	Request(ctx context.Context, subject model.Subject, recipient model.Recipient) (model.Challenge, error)
	Verify(ctx context.Context, subject model.Subject, code string) error
	Consume(ctx context.Context, subject model.Subject)
}

// attemptScript counts one attempt and returns the stored hash with the new count, or nil when no
// code is outstanding. A missing key is never recreated.
var attemptScript = redis.NewScript(`
local hash = redis.call('HGET', KEYS[1], ARGV[1])
if not hash then
	return false
end
local attempts = redis.call('HINCRBY', KEYS[1], ARGV[2], 1)
return {hash, attempts}
`)

type serviceImpl struct {
	client   *redis.Client
	notifier Notifier
	metrics  *metrics.Metrics
	otel     otel.Otel

	length      int
	ttl         time.Duration
	maxAttempts int
}

func New(client *redis.Client, notifier Notifier, cfg *config.Config, m *metrics.Metrics, otel otel.Otel) OTP {
	s := &serviceImpl{
		client:      client,
		notifier:    notifier,
		metrics:     m,
		otel:        otel,
		length:      cfg.OTP.Length,
		ttl:         time.Duration(cfg.OTP.TTLSeconds) * time.Second,
		maxAttempts: cfg.OTP.MaxAttempts,
	}

	if s.length <= 0 {
		s.length = defaultLength
	}

	if s.ttl <= 0 {
		s.ttl = defaultTTLSeconds * time.Second
	}

	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxAttempts
	}

	return s
}

// Request issues a new code for subject, replacing any outstanding one, and hands it to the
// notifier. Only the bcrypt hash is stored.
func (s *serviceImpl) Request(ctx context.Context, subject model.Subject, recipient model.Recipient) (res model.Challenge, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestOTP")
	defer scope.End()
	defer scope.TraceIfError(&err)

	code, err := s.generate()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate otp")

		return res, fmt.Errorf("failed to generate otp: %w", err)
	}

	hash, err := password.Hash(code)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash otp")

		return res, fmt.Errorf("failed to hash otp: %w", err)
	}

	key := subject.Key()

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, model.FieldHash, hash, model.FieldAttempts, 0)
		pipe.Expire(ctx, key, s.ttl)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store otp")

		return res, fmt.Errorf("failed to store otp: %w", err)
	}

	if err = s.notifier.Send(ctx, recipient, subject, code); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to deliver otp")

		s.discard(ctx, key)

		return res, fmt.Errorf("failed to deliver otp: %w", err)
	}

	return model.Challenge{
		ExpiresAt:   time.Now().Add(s.ttl),
		Length:      s.length,
		MaxAttempts: s.maxAttempts,
	}, nil
}

// Verify checks code against the outstanding one for subject. Every call counts as an attempt
// before the code is compared, so concurrent guesses cannot exceed the limit. A matching code stays
// valid until Consume is called.
func (s *serviceImpl) Verify(ctx context.Context, subject model.Subject, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyOTP")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key := subject.Key()

	values, err := attemptScript.Run(ctx, s.client, []string{key}, model.FieldHash, model.FieldAttempts).Slice()
	if errors.Is(err, redis.Nil) {
		s.metrics.IncOTPVerification(metrics.OTPResultExpired)

		return failure.BadRequestFromString("otp expired or not requested")
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read otp")

		return fmt.Errorf("failed to read otp: %w", err)
	}

	hash, _ := values[0].(string)
	attempts, _ := values[1].(int64)

	if attempts > int64(s.maxAttempts) {
		s.metrics.IncOTPVerification(metrics.OTPResultLocked)

		return failure.Forbidden("too many invalid attempts, request a new otp")
	}

	if err = password.Verify(strings.TrimSpace(code), hash); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("key", key).Msg("failed to verify otp")

			return fmt.Errorf("failed to verify otp: %w", err)
		}

		s.metrics.IncOTPVerification(metrics.OTPResultMismatch)

		return failure.BadRequestFromString("invalid otp")
	}

	s.metrics.IncOTPVerification(metrics.OTPResultSuccess)

	return nil
}

// Consume retires the outstanding code for subject.
func (s *serviceImpl) Consume(ctx context.Context, subject model.Subject) {
	s.discard(ctx, subject.Key())
}

func (s *serviceImpl) discard(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete otp")
	}
}

func (s *serviceImpl) generate() (string, error) {
	var b strings.Builder

	for range s.length {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}

		b.WriteString(n.String())
	}

	return b.String(), nil
}

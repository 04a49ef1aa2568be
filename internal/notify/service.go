package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FrancoGW/fit-app/internal/logger"
	"github.com/FrancoGW/fit-app/internal/metrics"
)

const (
	queueKey       = "notices"
	failedQueueKey = "notices:failed"
	maxTries       = 3
)

// Notice types, used as the metric label.
const (
	TypeGymProvisioned = "gym_provisioned"
	TypeLicenseGranted = "license_granted"
	TypeLicenseRevoked = "license_revoked"
)

type NoticeJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues email notices in Redis and drains the queue from a
// background goroutine, so a slow SMTP server never blocks an admin
// request.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// NewWithClient is used by tests to inject a mock Redis client.
func NewWithClient(client *redis.Client, fromEmail, fromName string) *Service {
	return &Service{redis: client, from: fromEmail, fromName: fromName}
}

func (s *Service) GymProvisioned(ctx context.Context, email, gymName, username, password string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour FitApp account is ready.\n\nUsername: %s\nPassword: %s\n\nPlease change the password after your first login.",
		gymName, username, password,
	)
	return s.enqueue(ctx, NoticeJob{
		Type:    TypeGymProvisioned,
		To:      email,
		Subject: "Welcome to FitApp",
		Body:    body,
	})
}

func (s *Service) LicenseGranted(ctx context.Context, email, gymName, licenseType string, endDate time.Time) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nA %s license has been activated for your gym. It is valid until %s.",
		gymName, licenseType, endDate.Format("2006-01-02"),
	)
	return s.enqueue(ctx, NoticeJob{
		Type:    TypeLicenseGranted,
		To:      email,
		Subject: "Your FitApp license is active",
		Body:    body,
	})
}

func (s *Service) LicenseRevoked(ctx context.Context, email, gymName string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour FitApp license has been revoked. Contact the administrator for details.",
		gymName,
	)
	return s.enqueue(ctx, NoticeJob{
		Type:    TypeLicenseRevoked,
		To:      email,
		Subject: "Your FitApp license was revoked",
		Body:    body,
	})
}

func (s *Service) enqueue(ctx context.Context, job NoticeJob) error {
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue %s notice to %s: %v", job.Type, job.To, err)
		return err
	}

	logger.Infof("Notice queued: %s to %s", job.Type, job.To)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notice service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notice service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job NoticeJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notice payload: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send %s notice to %s: %v", job.Type, job.To, err)
		metrics.RecordNotice(job.Type, "failed")

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
		} else {
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotice(job.Type, "sent")
	logger.Infof("Notice sent to %s", job.To)
}

func (s *Service) sendNow(job NoticeJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job NoticeJob, sendErr error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": sendErr.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notice to %s moved to failed queue after %d tries", job.To, job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.NoticeQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

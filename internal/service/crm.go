package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type crmService struct {
	clientRepo  repository.ClientRepository
	contactRepo repository.ContactRepository
	now         Clock
	log         *slog.Logger
}

func NewCRMService(clientRepo repository.ClientRepository, contactRepo repository.ContactRepository, now Clock) CRMService {
	if now == nil {
		now = time.Now
	}
	return &crmService{clientRepo: clientRepo, contactRepo: contactRepo, now: now, log: logger.WithService("crm")}
}

func (s *crmService) AddClient(ctx context.Context, op domain.Operator, client *domain.Client) error {
	if err := requireOperator(op); err != nil {
		return err
	}
	client.FirstName = strings.TrimSpace(client.FirstName)
	client.LastName = strings.TrimSpace(client.LastName)
	client.Phone = strings.TrimSpace(client.Phone)
	client.IDDocument = strings.TrimSpace(client.IDDocument)
	client.License = strings.TrimSpace(client.License)

	if client.FirstName == "" && client.LastName == "" {
		verr := domain.NewValidationError()
		verr.Add("first_name", msgRequired)
		return verr
	}
	client.CreatedOn = s.now().Format(utils.TimestampLayout)
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	s.log.InfoContext(ctx, "Client added", "client_id", client.ID, "operator", op.Subject())
	return nil
}

func (s *crmService) ListClients(ctx context.Context, op domain.Operator) ([]domain.Client, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	return s.clientRepo.List(ctx)
}

func (s *crmService) SubmitContact(ctx context.Context, msg *domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	verr := domain.NewValidationError()
	if msg.Name == "" {
		verr.Add("name", msgRequired)
	}
	if msg.Email == "" {
		verr.Add("email", msgRequired)
	} else if _, err := mail.ParseAddress(msg.Email); err != nil {
		verr.Add("email", "Enter a valid e-mail address.")
	}
	if msg.Message == "" {
		verr.Add("message", msgRequired)
	}
	if !verr.Empty() {
		return verr
	}

	msg.CreatedOn = s.now().Format(utils.TimestampLayout)
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	s.log.InfoContext(ctx, "Contact message received", "contact_id", msg.ID)
	return nil
}

func (s *crmService) ListContacts(ctx context.Context, op domain.Operator) ([]domain.ContactMessage, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	return s.contactRepo.List(ctx)
}

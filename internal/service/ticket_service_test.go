package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

func newTicketService(repo *fakeTicketRepo, dispatcher events.Dispatcher) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Categories: testTaxonomy(),
		Dispatcher: dispatcher,
	})
}

func TestCreateTicketValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTicketService(newFakeTicketRepo(), events.NewInMemoryDispatcher())

	tests := []struct {
		name  string
		input TicketCreateInput
	}{
		{name: "empty title", input: TicketCreateInput{Title: "  ", Category: "hardware"}},
		{name: "unknown category", input: TicketCreateInput{Title: "x", Category: "plumbing"}},
		{name: "subcategory outside category", input: TicketCreateInput{Title: "x", Category: "hardware", Subcategory: "crm"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.CreateTicket(ctx, tt.input)
			require.Error(t, err)
			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()
	var created []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		created = append(created, event)
		return nil
	})
	svc := newTicketService(newFakeTicketRepo(), dispatcher)

	ticket, err := svc.CreateTicket(ctx, TicketCreateInput{
		Title:       "  Printer jams  ",
		Description: "paper stuck",
		Category:    "hardware",
		Subcategory: "printer",
		ClientName:  "Sam",
		ClientEmail: "sam@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Printer jams", ticket.Title)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority, "priority defaults to medium")
	assert.NotEmpty(t, ticket.ID)

	require.Len(t, created, 1)
	assert.Equal(t, ticket.ID, created[0].TicketID)
}

func TestAddResponseMovesStatusAndStampsTicket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newFakeTicketRepo()
	svc := newTicketService(repo, events.NewInMemoryDispatcher())

	ticket, err := svc.CreateTicket(ctx, TicketCreateInput{
		Title: "VPN down", Description: "no tunnel", Category: "software",
	})
	require.NoError(t, err)

	updated, err := svc.AddResponse(ctx, ticket.ID, ResponseInput{
		Author:  "Dana Reed",
		Message: "Restarted the concentrator, please retry.",
		Status:  domain.TicketStatusResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.NotNil(t, updated.LastResponseBy)
	assert.Equal(t, "Dana Reed", *updated.LastResponseBy)
	assert.NotNil(t, updated.LastResponseAt)

	_, responses, err := svc.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Restarted the concentrator, please retry.", responses[0].Message)
	assert.Equal(t, domain.TicketStatusResolved, responses[0].Status)
}

func TestAddResponseValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTicketService(newFakeTicketRepo(), events.NewInMemoryDispatcher())

	_, err := svc.AddResponse(ctx, "tkt-001", ResponseInput{Author: "", Message: "hi", Status: domain.TicketStatusOpen})
	require.Error(t, err)

	_, err = svc.AddResponse(ctx, "missing", ResponseInput{Author: "a", Message: "b", Status: domain.TicketStatusOpen})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestGetTicketUnknown(t *testing.T) {
	t.Parallel()

	svc := newTicketService(newFakeTicketRepo(), events.NewInMemoryDispatcher())
	_, _, err := svc.GetTicket(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/example/hotel-console/internal/application"
	"github.com/example/hotel-console/internal/hotelapi"
)

// hotelAPIAdapter exposes the hotel API client through the interfaces the
// views depend on.
type hotelAPIAdapter struct {
	client *hotelapi.Client
}

func newHotelAPIAdapter(client *hotelapi.Client) *hotelAPIAdapter {
	return &hotelAPIAdapter{client: client}
}

func (a *hotelAPIAdapter) ListEventBookings(ctx context.Context, token string, filter application.EventBookingFilter) ([]application.EventBooking, error) {
	records, err := a.client.ListEventBookings(ctx, token, hotelapi.EventBookingQuery{GuestID: filter.GuestID})
	if err != nil {
		return nil, wrapAPIError(err)
	}
	bookings := make([]application.EventBooking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, toApplicationBooking(record))
	}
	return bookings, nil
}

func (a *hotelAPIAdapter) CreateEventBooking(ctx context.Context, token string, booking application.NewEventBooking) (application.EventBooking, error) {
	created, err := a.client.CreateEventBooking(ctx, token, hotelapi.NewEventBooking{
		Guest:           booking.GuestID,
		EventType:       string(booking.EventType),
		StartDate:       booking.StartDate,
		EndDate:         booking.EndDate,
		Attendees:       booking.Attendees,
		BudgetNotes:     booking.BudgetNotes,
		SpecialRequests: booking.SpecialRequests,
		Status:          string(booking.Status),
	})
	if err != nil {
		return application.EventBooking{}, wrapAPIError(err)
	}
	return toApplicationBooking(created), nil
}

func (a *hotelAPIAdapter) UpdateEventBookingStatus(ctx context.Context, token string, id int64, status application.EventBookingStatus) error {
	return wrapAPIError(a.client.UpdateEventBookingStatus(ctx, token, id, string(status)))
}

func (a *hotelAPIAdapter) DeleteEventBooking(ctx context.Context, token string, id int64) error {
	return wrapAPIError(a.client.DeleteEventBooking(ctx, token, id))
}

func (a *hotelAPIAdapter) FindGuestsByEmail(ctx context.Context, token, email string) ([]application.Guest, error) {
	records, err := a.client.FindGuestsByEmail(ctx, token, email)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	guests := make([]application.Guest, 0, len(records))
	for _, record := range records {
		guests = append(guests, application.Guest{ID: record.ID, Name: record.Name, Email: record.Email, Phone: record.Phone})
	}
	return guests, nil
}

func (a *hotelAPIAdapter) ListBlogs(ctx context.Context) ([]application.Blog, error) {
	records, err := a.client.ListBlogs(ctx)
	if err != nil {
		return nil, wrapAPIError(err)
	}
	blogs := make([]application.Blog, 0, len(records))
	for _, record := range records {
		blogs = append(blogs, application.Blog{
			ID:                 record.ID,
			Title:              record.Title,
			Content:            record.Content,
			Image:              derefString(record.Image),
			Author:             record.Author,
			IsPublished:        record.IsPublished,
			CreatedAtFormatted: record.CreatedAtFormatted,
		})
	}
	return blogs, nil
}

func (a *hotelAPIAdapter) Login(ctx context.Context, username, password string) (application.LoginResult, error) {
	result, err := a.client.Login(ctx, username, password)
	if err != nil {
		switch hotelapi.StatusCode(err) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return application.LoginResult{}, fmt.Errorf("%w: %w", application.ErrInvalidCredentials, err)
		}
		return application.LoginResult{}, wrapAPIError(err)
	}
	token := result.Token
	if token == "" {
		token = result.Access
	}
	return application.LoginResult{Token: token, User: result.User}, nil
}

// wrapAPIError marks non-2xx answers as ErrRemoteRejected so the views can
// tell a refused request from one that never completed.
func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *hotelapi.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", application.ErrRemoteRejected, err)
	}
	return err
}

func toApplicationBooking(record hotelapi.EventBooking) application.EventBooking {
	return application.EventBooking{
		ID:              record.ID,
		GuestID:         record.Guest,
		GuestName:       record.GuestName,
		GuestEmail:      record.GuestEmail,
		EventType:       application.EventType(record.EventType),
		StartDate:       record.StartDate,
		EndDate:         record.EndDate,
		Attendees:       record.Attendees,
		BudgetNotes:     derefString(record.BudgetNotes),
		SpecialRequests: derefString(record.SpecialRequests),
		Status:          application.EventBookingStatus(record.Status),
		CreatedAt:       record.CreatedAt,
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

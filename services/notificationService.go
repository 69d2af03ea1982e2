package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"foodstop-server/models"

	"github.com/google/uuid"
)

type Event string

const (
	EventOrderCreated  Event = "order_created"
	EventStatusChanged Event = "status_changed"
)

// Message is the payload handed to a notification channel.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Channel is one notification transport: email, SMS gateway or push. A nil
// channel on the dispatcher means that transport is not configured.
type Channel interface {
	Send(ctx context.Context, recipient string, message Message) error
}

// Broadcaster fans a message out to every connected dashboard client,
// regardless of notification token.
type Broadcaster interface {
	Broadcast(ctx context.Context, event Event, message Message) error
}

// AdminTokenSource lists admin accounts holding a push token.
type AdminTokenSource interface {
	FindAdminsWithToken(ctx context.Context) ([]models.User, error)
}

type DispatcherConfig struct {
	StoreEmail  string
	AdminPhones []string
	QueueSize   int
}

type dispatchJob struct {
	event Event
	order *models.Order
}

// Dispatcher fans an order event out to every configured channel.
// Channels run concurrently and independently; one channel failing never
// affects another, and no failure ever reaches the order pipeline.
type Dispatcher struct {
	email     Channel
	sms       Channel
	push      Channel
	dashboard Broadcaster
	users     AdminTokenSource
	cfg       DispatcherConfig

	queue chan dispatchJob
	wg    sync.WaitGroup
}

func NewDispatcher(email Channel, sms Channel, push Channel, dashboard Broadcaster, users AdminTokenSource, cfg DispatcherConfig) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	d := &Dispatcher{
		email:     email,
		sms:       sms,
		push:      push,
		dashboard: dashboard,
		users:     users,
		cfg:       cfg,
		queue:     make(chan dispatchJob, cfg.QueueSize),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Enqueue hands the event to the background worker and returns immediately.
// The order pipeline never observes dispatch outcomes; a full queue drops
// the event with a log line.
func (d *Dispatcher) Enqueue(event Event, order *models.Order) {
	select {
	case d.queue <- dispatchJob{event: event, order: order}:
	default:
		log.Printf("notification queue full, dropping %s for order %s", event, order.Order_id)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.queue {
		report := d.Dispatch(context.Background(), job.event, job.order)
		for _, result := range report.Results {
			if !result.Ok {
				log.Printf("dispatch %s: channel %s failed for order %s: %s",
					report.Report_id, result.Channel, report.Order_id, result.Error)
			}
		}
	}
}

// Dispatch invokes every applicable channel in parallel and joins their
// outcomes into a report. It never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event, order *models.Order) *models.DispatchReport {
	report := &models.DispatchReport{
		Report_id: uuid.NewString(),
		Event:     string(event),
		Order_id:  order.Order_id,
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	attempt := func(channel string, send func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := send()
			result := models.ChannelResult{Channel: channel, Ok: err == nil}
			if err != nil {
				result.Error = err.Error()
			}
			mu.Lock()
			report.Results = append(report.Results, result)
			mu.Unlock()
		}()
	}

	switch event {
	case EventOrderCreated:
		if d.email != nil {
			attempt("customer_email", func() error {
				return d.email.Send(ctx, order.Email, customerOrderEmail(order))
			})
			if d.cfg.StoreEmail != "" {
				attempt("store_email", func() error {
					return d.email.Send(ctx, d.cfg.StoreEmail, storeAlertEmail(order))
				})
			}
		}
		if d.sms != nil && order.Phone != "" {
			attempt("customer_sms", func() error {
				return d.sms.Send(ctx, order.Phone, orderConfirmationSMS(order))
			})
		}
		if d.sms != nil && len(d.cfg.AdminPhones) > 0 {
			attempt("admin_sms", func() error {
				return d.sendAdminSMS(ctx, order)
			})
		}
		if d.push != nil && d.users != nil {
			attempt("admin_push", func() error {
				return d.sendAdminPush(ctx, order)
			})
		}
		if d.dashboard != nil {
			attempt("dashboard_push", func() error {
				return d.dashboard.Broadcast(ctx, event, adminAlertPush(order))
			})
		}
	case EventStatusChanged:
		if d.sms != nil && order.Phone != "" {
			attempt("customer_sms", func() error {
				return d.sms.Send(ctx, order.Phone, statusChangeSMS(order))
			})
		}
		if d.dashboard != nil {
			attempt("dashboard_push", func() error {
				return d.dashboard.Broadcast(ctx, event, statusChangePush(order))
			})
		}
	}

	wg.Wait()
	return report
}

// sendAdminSMS alerts the configured admin numbers; it succeeds when at
// least one recipient got the message.
func (d *Dispatcher) sendAdminSMS(ctx context.Context, order *models.Order) error {
	message := adminAlertSMS(order)
	var failures []string
	for _, phone := range d.cfg.AdminPhones {
		if err := d.sms.Send(ctx, phone, message); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", phone, err))
			continue
		}
	}
	if len(failures) == len(d.cfg.AdminPhones) {
		return fmt.Errorf("all admin numbers failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

// sendAdminPush notifies every admin account holding a push token.
// Per-token failures are collected; the channel reports them without
// affecting sibling channels.
func (d *Dispatcher) sendAdminPush(ctx context.Context, order *models.Order) error {
	admins, err := d.users.FindAdminsWithToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin tokens: %w", err)
	}

	message := adminAlertPush(order)
	var failures []string
	for _, admin := range admins {
		if admin.Notification_token == nil {
			continue
		}
		if err := d.push.Send(ctx, *admin.Notification_token, message); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", admin.User_id, err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("push failed for %d admin(s): %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

func customerOrderEmail(order *models.Order) Message {
	return Message{
		Subject: "Your order is confirmed",
		Body: fmt.Sprintf("Hi %s, we received your order %s for $%.2f (%s). We'll let you know when it's on the way.",
			order.Customer_name, order.Order_id, order.Total_amount, order.Delivery_type),
	}
}

func storeAlertEmail(order *models.Order) Message {
	return Message{
		Subject: fmt.Sprintf("New order %s", order.Order_id),
		Body: fmt.Sprintf("%s placed a %s order of %d item(s) totaling $%.2f. Phone: %s.",
			order.Customer_name, order.Delivery_type, len(order.Items), order.Total_amount, order.Phone),
	}
}

func orderConfirmationSMS(order *models.Order) Message {
	return Message{
		Body: fmt.Sprintf("Your order %s for $%.2f is confirmed.", order.Order_id, order.Total_amount),
	}
}

func adminAlertSMS(order *models.Order) Message {
	return Message{
		Body: fmt.Sprintf("New order %s: $%.2f, %s.", order.Order_id, order.Total_amount, order.Delivery_type),
	}
}

func adminAlertPush(order *models.Order) Message {
	return Message{
		Subject: "New order",
		Body:    fmt.Sprintf("Order %s from %s, $%.2f.", order.Order_id, order.Customer_name, order.Total_amount),
	}
}

func statusChangeSMS(order *models.Order) Message {
	return Message{
		Body: fmt.Sprintf("Update on order %s: it is now %s.", order.Order_id, order.Status),
	}
}

func statusChangePush(order *models.Order) Message {
	return Message{
		Subject: "Order update",
		Body:    fmt.Sprintf("Order %s is now %s.", order.Order_id, order.Status),
	}
}

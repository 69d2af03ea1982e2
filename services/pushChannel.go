package services

import (
	"context"

	"foodstop-server/ws"
)

// WebsocketPushChannel delivers push notifications to admin dashboard
// clients connected to the hub, addressed by notification token.
type WebsocketPushChannel struct {
	hub *ws.Hub
}

func NewWebsocketPushChannel(hub *ws.Hub) *WebsocketPushChannel {
	return &WebsocketPushChannel{hub: hub}
}

func (p *WebsocketPushChannel) Send(ctx context.Context, recipient string, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.hub.SendToToken(recipient, ws.Message{Event: "notification", Payload: message})
}

// Broadcast feeds the event to every connected dashboard, including
// connections without a notification token.
func (p *WebsocketPushChannel) Broadcast(ctx context.Context, event Event, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.hub.Broadcast(ws.Message{Event: string(event), Payload: message})
	return nil
}

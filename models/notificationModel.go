package models

// ChannelResult is the outcome of one notification channel attempt.
type ChannelResult struct {
	Channel string `json:"channel"`
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// DispatchReport collects per-channel outcomes for one order event.
// It is internal observability data and is only ever logged.
type DispatchReport struct {
	Report_id string          `json:"report_id"`
	Event     string          `json:"event"`
	Order_id  string          `json:"order_id"`
	Results   []ChannelResult `json:"results"`
}

func (r *DispatchReport) Result(channel string) *ChannelResult {
	for i := range r.Results {
		if r.Results[i].Channel == channel {
			return &r.Results[i]
		}
	}
	return nil
}

package application

import "github.com/bnema/recruit-chat-cli/internal/domain"

// ActiveView holds the one session that is hydrated with its messages.
type ActiveView struct {
	session *domain.Session
}

func NewActiveView() *ActiveView {
	return &ActiveView{}
}

func (v *ActiveView) Open(session domain.Session) {
	opened := session.Clone()
	if opened.Messages == nil {
		opened.Messages = []domain.Message{}
	}

	v.session = &opened
}

// AppendExchange appends both messages of the exchange, but only while the
// view still shows id. It reports false for a stale response.
func (v *ActiveView) AppendExchange(id domain.SessionID, exchange domain.Exchange) bool {
	if v.session == nil || v.session.ID != id {
		return false
	}

	v.session.Messages = append(v.session.Messages, exchange.User, exchange.Assistant)
	v.session.UpdatedAt = latest(v.session.UpdatedAt, exchange.Assistant.CreatedAt)

	return true
}

func (v *ActiveView) Close() {
	v.session = nil
}

func (v *ActiveView) Session() (domain.Session, bool) {
	if v.session == nil {
		return domain.Session{}, false
	}

	return v.session.Clone(), true
}

func (v *ActiveView) ID() (domain.SessionID, bool) {
	if v.session == nil {
		return "", false
	}

	return v.session.ID, true
}

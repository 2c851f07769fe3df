package services

import (
	"fmt"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type DocumentAction string

const (
	ActionReceive  DocumentAction = "receive"
	ActionApprove  DocumentAction = "approve"
	ActionReject   DocumentAction = "reject"
	ActionComplete DocumentAction = "complete"
	ActionCancel   DocumentAction = "cancel"
)

// stockEffect is the per item stock change of a create or transition.
// A zero sign means no stock moves.
type stockEffect struct {
	sign            int
	transactionType models.TransactionType
}

func (e stockEffect) moves() bool {
	return e.sign != 0
}

type transition struct {
	from   []models.DocumentStatus
	to     models.DocumentStatus
	effect stockEffect
}

func (t transition) allows(status models.DocumentStatus) bool {
	for _, from := range t.from {
		if from == status {
			return true
		}
	}
	return false
}

type lifecycle struct {
	initial     models.DocumentStatus
	onCreate    stockEffect
	transitions map[DocumentAction]transition
}

// lifecycles holds the status machine of every document kind. Cancelling never
// reverses stock that already moved.
var lifecycles = map[models.DocumentKind]lifecycle{
	models.KindPurchaseOrder: {
		initial: models.StatusPending,
		transitions: map[DocumentAction]transition{
			ActionReceive: {
				from:   []models.DocumentStatus{models.StatusPending},
				to:     models.StatusReceived,
				effect: stockEffect{sign: 1, transactionType: models.TransactionPurchase},
			},
			ActionCancel: {
				from: []models.DocumentStatus{models.StatusPending, models.StatusReceived},
				to:   models.StatusCancelled,
			},
		},
	},
	models.KindSalesInvoice: {
		initial:  models.StatusCompleted,
		onCreate: stockEffect{sign: -1, transactionType: models.TransactionSale},
		transitions: map[DocumentAction]transition{
			ActionCancel: {
				from: []models.DocumentStatus{models.StatusPending, models.StatusCompleted},
				to:   models.StatusCancelled,
			},
		},
	},
	models.KindCredit: {
		initial:  models.StatusCompleted,
		onCreate: stockEffect{sign: 1, transactionType: models.TransactionCredit},
		transitions: map[DocumentAction]transition{
			ActionCancel: {
				from: []models.DocumentStatus{models.StatusPending, models.StatusCompleted},
				to:   models.StatusCancelled,
			},
		},
	},
	models.KindWarranty: {
		initial:  models.StatusPending,
		onCreate: stockEffect{sign: -1, transactionType: models.TransactionWarranty},
		transitions: map[DocumentAction]transition{
			ActionApprove: {
				from: []models.DocumentStatus{models.StatusPending},
				to:   models.StatusApproved,
			},
			ActionReject: {
				from: []models.DocumentStatus{models.StatusPending, models.StatusApproved},
				to:   models.StatusRejected,
			},
			ActionComplete: {
				from: []models.DocumentStatus{models.StatusApproved},
				to:   models.StatusCompleted,
			},
			ActionCancel: {
				from: []models.DocumentStatus{models.StatusPending, models.StatusApproved},
				to:   models.StatusCancelled,
			},
		},
	},
}

func lifecycleFor(kind models.DocumentKind) (lifecycle, error) {
	l, ok := lifecycles[kind]
	if !ok {
		return lifecycle{}, common.NewValidationError("kind", fmt.Sprintf("unknown document kind %q", kind))
	}
	return l, nil
}

func (l lifecycle) transition(kind models.DocumentKind, action DocumentAction) (transition, error) {
	t, ok := l.transitions[action]
	if !ok {
		return transition{}, common.NewValidationError("action", fmt.Sprintf("cannot %s a %s", action, kind.Label()))
	}
	return t, nil
}

// movedStock reports whether a document in this status has already changed stock
func (l lifecycle) movedStock(status models.DocumentStatus) bool {
	if l.onCreate.moves() {
		return true
	}
	for _, t := range l.transitions {
		if t.effect.moves() && t.to == status {
			return true
		}
	}
	return false
}

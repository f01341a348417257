package status

// Status messages shown on the storefront. Fixed set, chosen by priority:
// loading > closed-by-hours > closed-by-cash > open.
const (
	MessageLoading     = "Verificando disponibilidad"
	MessageClosedHours = "Cerrado por horario"
	MessageClosedCash  = "Temporalmente no disponible"
	MessageOpen        = "Abierto ahora"
)

// RestaurantStatus is the derived order-acceptance status for one branch.
// It has no identity or storage; it is recomputed whenever an input changes.
type RestaurantStatus struct {
	IsOpen          bool        `json:"is_open"`
	IsWithinHours   bool        `json:"is_within_hours"`
	HasCashRegister bool        `json:"has_cash_register"`
	IsLoading       bool        `json:"is_loading"`
	CanAcceptOrders bool        `json:"can_accept_orders"`
	StatusMessage   string      `json:"status_message"`
	CheckFailed     bool        `json:"check_failed,omitempty"`
	DebugInfo       *Diagnostic `json:"debug_info,omitempty"`
}

// Input carries the three independently-sourced signals for one evaluation
type Input struct {
	IsLoading       bool
	IsWithinHours   bool
	HasCashRegister bool
	// CheckFailed marks a failed cash-register query, distinct from a
	// confirmed "no open register". Both gate acceptance the same way.
	CheckFailed bool
	Diagnostic  *Diagnostic
}

// Compose merges the signals into a single status. While loading, acceptance
// is denied regardless of the other inputs (fail closed during uncertainty);
// otherwise acceptance is the conjunction of in-hours and register-open.
func Compose(in Input) RestaurantStatus {
	s := RestaurantStatus{
		IsWithinHours:   in.IsWithinHours,
		HasCashRegister: in.HasCashRegister,
		IsLoading:       in.IsLoading,
		CheckFailed:     in.CheckFailed,
		DebugInfo:       in.Diagnostic,
	}

	switch {
	case in.IsLoading:
		s.StatusMessage = MessageLoading
	case !in.IsWithinHours:
		s.StatusMessage = MessageClosedHours
	case !in.HasCashRegister:
		s.StatusMessage = MessageClosedCash
	default:
		s.StatusMessage = MessageOpen
		s.CanAcceptOrders = true
	}

	s.IsOpen = s.CanAcceptOrders
	return s
}

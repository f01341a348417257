package status

import "testing"

func TestComposeLoadingTakesPriority(t *testing.T) {
	// Loading wins regardless of the other two booleans
	for _, within := range []bool{true, false} {
		for _, cash := range []bool{true, false} {
			s := Compose(Input{IsLoading: true, IsWithinHours: within, HasCashRegister: cash})
			if s.StatusMessage != MessageLoading {
				t.Errorf("loading with within=%v cash=%v: message = %q", within, cash, s.StatusMessage)
			}
			if s.CanAcceptOrders {
				t.Errorf("loading with within=%v cash=%v: must not accept orders", within, cash)
			}
		}
	}
}

func TestComposeConjunction(t *testing.T) {
	tests := []struct {
		within   bool
		cash     bool
		accept   bool
		message  string
	}{
		{true, true, true, MessageOpen},
		{true, false, false, MessageClosedCash},
		{false, true, false, MessageClosedHours},
		{false, false, false, MessageClosedHours},
	}

	for _, test := range tests {
		s := Compose(Input{IsWithinHours: test.within, HasCashRegister: test.cash})
		if s.CanAcceptOrders != test.accept {
			t.Errorf("within=%v cash=%v: can_accept_orders = %v, expected %v",
				test.within, test.cash, s.CanAcceptOrders, test.accept)
		}
		if s.CanAcceptOrders != (s.IsWithinHours && s.HasCashRegister) {
			t.Errorf("within=%v cash=%v: conjunction law violated", test.within, test.cash)
		}
		if s.StatusMessage != test.message {
			t.Errorf("within=%v cash=%v: message = %q, expected %q",
				test.within, test.cash, s.StatusMessage, test.message)
		}
		if s.IsOpen != s.CanAcceptOrders {
			t.Errorf("within=%v cash=%v: is_open must mirror can_accept_orders", test.within, test.cash)
		}
	}
}

func TestComposeCheckFailedStaysDistinct(t *testing.T) {
	failed := Compose(Input{IsWithinHours: true, HasCashRegister: false, CheckFailed: true})
	confirmed := Compose(Input{IsWithinHours: true, HasCashRegister: false})

	// Externally both block acceptance with the same message
	if failed.CanAcceptOrders || confirmed.CanAcceptOrders {
		t.Error("neither variant may accept orders")
	}
	if failed.StatusMessage != confirmed.StatusMessage {
		t.Error("both variants must show the same storefront message")
	}
	// but the failure marker keeps them distinguishable
	if !failed.CheckFailed {
		t.Error("query failure must be marked on the status")
	}
	if confirmed.CheckFailed {
		t.Error("confirmed no-register must not be marked as a failure")
	}
}

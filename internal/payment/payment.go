package payment

import "context"

// Stub approves every payment. It stands in for a real payment provider.
type Stub struct{}

func NewStub() Stub {
	return Stub{}
}

func (Stub) Approve(ctx context.Context, eventID, userEmail string) (bool, error) {
	return true, nil
}

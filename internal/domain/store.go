package domain

import "context"

// Fault 由存储适配器判定，服务层只看分类不看驱动消息
type Fault uint8

const (
	FaultUnknown Fault = iota
	FaultConnectivity
	FaultConstraint
	FaultNotFound
)

func (f Fault) String() string {
	switch f {
	case FaultConnectivity:
		return "connectivity"
	case FaultConstraint:
		return "constraint"
	case FaultNotFound:
		return "not found"
	}
	return "unknown"
}

type StoreError struct {
	Fault Fault
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	msg := "store " + e.Fault.String()
	if e.Op != "" {
		msg += " (" + e.Op + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is 让 errors.Is(err, ErrUnreachable) 只按 Fault 比较
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Fault == e.Fault
}

var (
	ErrUnreachable = &StoreError{Fault: FaultConnectivity}
	ErrConstraint  = &StoreError{Fault: FaultConstraint}
	ErrNoRecord    = &StoreError{Fault: FaultNotFound}
)

// ContentStore 每次 Session 占用一个连接，fn 返回后无论成败都会释放
type ContentStore interface {
	Session(ctx context.Context, fn func(s StoreSession) error) error
}

// StoreSession 绑定在一次 Session 的连接和 context 上。
// FindNews/UpdateNews/DeleteNews/IncrementViews 找不到记录时返回 ErrNoRecord；
// FindCategory* / FindUserByEmail 找不到时返回 nil, nil。
type StoreSession interface {
	ListNews(f NewsFilter) ([]News, int64, error)
	FindNews(id string) (*News, error)
	IncrementViews(id string) error
	CreateNews(n *News) error
	UpdateNews(id string, in NewsInput) error
	DeleteNews(id string) error

	ListCategories() ([]Category, error)
	FindCategory(id string) (*Category, error)
	FindCategoryByName(name string) (*Category, error)
	CreateCategory(c *Category) error

	FindUserByEmail(email string) (*User, error)
	CreateUser(u *User) error
}

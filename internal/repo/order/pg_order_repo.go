package order_repo

import (
	"context"
	"errors"
	"fmt"

	"PayPalReconciler/internal/domain/order"
	"PayPalReconciler/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var _ order.OrderRepo = (*PgOrderRepo)(nil)

type pool interface {
	postgres.Executor
	postgres.TxBeginner
}

// PgOrderRepo is the main repository
type PgOrderRepo struct {
	pool pool
	repo
}

func NewPgOrderRepo(pg *postgres.Postgres) *PgOrderRepo {
	return newPgOrderRepo(pg.Pool, pg.Builder)
}

func newPgOrderRepo(p pool, builder squirrel.StatementBuilderType) *PgOrderRepo {
	return &PgOrderRepo{
		pool: p,
		repo: repo{db: p, builder: builder},
	}
}

func (r *PgOrderRepo) InTransaction(ctx context.Context, fn func(repo order.TxOrderRepo) error) error {
	return postgres.RunInTx(ctx, r.pool, func(tx postgres.Executor) error {
		return fn(&repo{db: tx, builder: r.builder})
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var orderColumns = []string{"o.id", "o.paypal_transaction_id", "o.payment_status", "o.created_at", "o.updated_at"}

func (r *repo) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	return r.findOrder(ctx, r.builder.Select(orderColumns...).
		From("orders o").
		Where(squirrel.Eq{"o.id": id}))
}

func (r *repo) FindOrderByTransactionID(ctx context.Context, transactionID string) (*order.Order, error) {
	return r.findOrder(ctx, r.builder.Select(orderColumns...).
		From("orders o").
		Where(squirrel.Eq{"o.paypal_transaction_id": transactionID}))
}

func (r *repo) FindOrderByPayPalOrderID(ctx context.Context, payPalOrderID string) (*order.Order, error) {
	return r.findOrder(ctx, r.builder.Select(orderColumns...).
		From("orders o").
		Join("paypal_orders p ON p.order_id = o.id").
		Where(squirrel.Eq{"p.paypal_order_id": payPalOrderID}).
		Limit(1))
}

func (r *repo) findOrder(ctx context.Context, q squirrel.SelectBuilder) (*order.Order, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}

	o, err := parseOrderRow(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	return o, nil
}

// FindPayPalOrder returns the most recently updated mirror of the order when
// payPalOrderID is empty.
func (r *repo) FindPayPalOrder(ctx context.Context, orderID, payPalOrderID string) (*order.PayPalOrder, error) {
	q := r.builder.Select("order_id", "paypal_order_id", "payment_method_id", "status", "updated_at").
		From("paypal_orders").
		Where(squirrel.Eq{"order_id": orderID})
	if payPalOrderID != "" {
		q = q.Where(squirrel.Eq{"paypal_order_id": payPalOrderID})
	}
	sql, args, err := q.OrderBy("updated_at DESC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build paypal order query: %w", err)
	}

	var p order.PayPalOrder
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.OrderID, &p.PayPalOrderID, &p.PaymentMethodID, &p.Status, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query paypal order: %w", err)
	}
	return &p, nil
}

func (r *repo) UpdatePaymentStatus(ctx context.Context, orderID string, expected, next order.PaymentStatus) (bool, error) {
	query, args, err := r.builder.Update("orders").
		Set("payment_status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID, "payment_status": expected}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetTransactionID never overwrites an existing binding.
func (r *repo) SetTransactionID(ctx context.Context, orderID, transactionID string) error {
	query, args, err := r.builder.Update("orders").
		Set("paypal_transaction_id", transactionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID, "paypal_transaction_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set transaction id query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if postgres.IsPgErrorUniqueViolation(err) {
		return fmt.Errorf("%w: %s", order.ErrTransactionIDTaken, transactionID)
	}
	if err != nil {
		return fmt.Errorf("set transaction id: %w", err)
	}
	return nil
}

func (r *repo) UpdatePayPalOrderStatus(ctx context.Context, orderID, payPalOrderID, status string) error {
	query, args, err := r.builder.Update("paypal_orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_id": orderID, "paypal_order_id": payPalOrderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update paypal order query: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update paypal order status: %w", err)
	}
	return nil
}

func parseOrderRow(row pgx.Row) (*order.Order, error) {
	var (
		o             order.Order
		transactionID *string
		rawStatus     string
	)
	err := row.Scan(&o.ID, &transactionID, &rawStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.PaymentStatus, err = order.NewPaymentStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid status in database: %w", err)
	}
	if transactionID != nil {
		o.TransactionID = *transactionID
	}
	return &o, nil
}

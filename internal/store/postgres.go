package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhle/checkit/internal/model"
)

// pgUniqueViolation is the SQLSTATE raised for unique constraint failures.
const pgUniqueViolation = "23505"

// PostgresStore implements the Store interface on a hosted Postgres database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at dsn, verifies the connection
// and applies the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnIdleTime = 20 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying postgres schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases every pooled connection.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// === Todos ===

func (s *PostgresStore) ListTodos(ctx context.Context, ownerID string) ([]model.Todo, error) {
	todos, err := listScoped[model.Todo](ctx, s.pool, "todos", todoColumns, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	return todos, nil
}

func (s *PostgresStore) InsertTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if strings.TrimSpace(todo.Title) == "" {
		return model.Todo{}, fmt.Errorf("todo title must not be empty")
	}
	if todo.UserID == "" {
		return model.Todo{}, fmt.Errorf("todo owner must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	ts := now()

	stored, err := queryOne[model.Todo](ctx, s.pool, `
		INSERT INTO todos (id, title, completed, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+todoColumns,
		todo.ID, todo.Title, todo.Completed, nullableString(todo.CategoryID),
		todo.UserID, ts, ts,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("creating todo: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) UpdateTodo(
	ctx context.Context,
	ownerID, id string,
	patch model.TodoPatch,
) (model.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Todo{}, fmt.Errorf("todo title must not be empty")
	}
	stored, err := updateScoped[model.Todo](ctx, s.pool, "todos", todoColumns, ownerID, id, todoAssignments(patch))
	if err != nil {
		return model.Todo{}, fmt.Errorf("updating todo %s: %w", id, err)
	}
	return stored, nil
}

func (s *PostgresStore) DeleteTodo(ctx context.Context, ownerID, id string) error {
	if err := s.deleteScoped(ctx, "todos", ownerID, id); err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	return nil
}

// === Checklist items ===

func (s *PostgresStore) ListChecklistItems(ctx context.Context, ownerID string) ([]model.ChecklistItem, error) {
	items, err := listScoped[model.ChecklistItem](ctx, s.pool, "checklist_items", checklistColumns, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) InsertChecklistItem(
	ctx context.Context,
	item model.ChecklistItem,
) (model.ChecklistItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return model.ChecklistItem{}, fmt.Errorf("checklist item title must not be empty")
	}
	if item.UserID == "" {
		return model.ChecklistItem{}, fmt.Errorf("checklist item owner must not be empty")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Category == "" {
		item.Category = model.DefaultChecklistCategory
	}
	ts := now()

	stored, err := queryOne[model.ChecklistItem](ctx, s.pool, `
		INSERT INTO checklist_items (
			id, title, quantity, category, completed, notes,
			user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+checklistColumns,
		item.ID, item.Title, nullableString(item.Quantity), item.Category,
		item.Completed, nullableString(item.Notes),
		item.UserID, ts, ts,
	)
	if err != nil {
		return model.ChecklistItem{}, fmt.Errorf("adding checklist item: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) UpdateChecklistItem(
	ctx context.Context,
	ownerID, id string,
	patch model.ChecklistItemPatch,
) (model.ChecklistItem, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.ChecklistItem{}, fmt.Errorf("checklist item title must not be empty")
	}
	stored, err := updateScoped[model.ChecklistItem](ctx, s.pool, "checklist_items", checklistColumns, ownerID, id, checklistAssignments(patch))
	if err != nil {
		return model.ChecklistItem{}, fmt.Errorf("updating checklist item %s: %w", id, err)
	}
	return stored, nil
}

func (s *PostgresStore) DeleteChecklistItem(ctx context.Context, ownerID, id string) error {
	if err := s.deleteScoped(ctx, "checklist_items", ownerID, id); err != nil {
		return fmt.Errorf("deleting checklist item %s: %w", id, err)
	}
	return nil
}

// === Categories ===

func (s *PostgresStore) ListCategories(ctx context.Context, ownerID string) ([]model.Category, error) {
	categories, err := listScoped[model.Category](ctx, s.pool, "categories", categoryColumns, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) InsertCategory(ctx context.Context, category model.Category) (model.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return model.Category{}, fmt.Errorf("category name must not be empty")
	}
	if category.UserID == "" {
		return model.Category{}, fmt.Errorf("category owner must not be empty")
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	ts := now()

	stored, err := queryOne[model.Category](ctx, s.pool, `
		INSERT INTO categories (id, name, color, icon, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+categoryColumns,
		category.ID, category.Name, category.Color, nullableString(category.Icon),
		category.UserID, ts, ts,
	)
	if err != nil {
		return model.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) UpdateCategory(
	ctx context.Context,
	ownerID, id string,
	patch model.CategoryPatch,
) (model.Category, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Category{}, fmt.Errorf("category name must not be empty")
	}
	stored, err := updateScoped[model.Category](ctx, s.pool, "categories", categoryColumns, ownerID, id, categoryAssignments(patch))
	if err != nil {
		return model.Category{}, fmt.Errorf("updating category %s: %w", id, err)
	}
	return stored, nil
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if err := s.deleteScoped(ctx, "categories", ownerID, id); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}

// === Users ===

func (s *PostgresStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now()

	_, err := s.pool.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)",
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.User{}, fmt.Errorf("creating user %s: %w", user.Email, ErrDuplicate)
		}
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *PostgresStore) getUser(ctx context.Context, column, value string) (*model.User, error) {
	user, err := queryOne[model.User](ctx, s.pool,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("getting user by %s: %w", column, model.ErrNotFound)
		}
		return nil, fmt.Errorf("getting user by %s: %w", column, err)
	}
	return &user, nil
}

func (s *PostgresStore) deleteScoped(ctx context.Context, table, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", table),
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func listScoped[T any](ctx context.Context, pool *pgxpool.Pool, table, columns, ownerID string) ([]T, error) {
	rows, err := pool.Query(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1 ORDER BY created_at ASC, id ASC", columns, table),
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// queryOne scans a single row by column name. pgx.ErrNoRows becomes
// model.ErrNotFound.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, query string, args ...any) (T, error) {
	var zero T
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, model.ErrNotFound
		}
		return zero, err
	}
	return row, nil
}

func updateScoped[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	table, columns, ownerID, id string,
	as []assignment,
) (T, error) {
	as = append(as, assignment{"updated_at", now()})
	set, args := setClause(as, func(n int) string { return "$" + strconv.Itoa(n) }, 1)
	n := len(args)
	args = append(args, id, ownerID)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		table, set, n+1, n+2, columns,
	)
	return queryOne[T](ctx, pool, query, args...)
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/MohammadDAlil0/scase-food-go/internal/platform/spanner"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/domain"
)

var userColumns = []string{
	"UserID", "Username", "Email", "Role", "PasswordDigest",
	"Status", "CallBackAt", "Contributions", "CreatedAt", "UpdatedAt",
}

// SpannerRepository implements UserRepository using Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed user repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.UserRepository = (*SpannerRepository)(nil)

func (r *SpannerRepository) Save(ctx context.Context, user *domain.User) error {
	var callBackAt spanner.NullTime
	if !user.CallBackAt().IsZero() {
		callBackAt = spanner.NullTime{Time: user.CallBackAt(), Valid: true}
	}

	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Users", userColumns,
			[]interface{}{
				user.ID().String(),
				user.Username().String(),
				user.Email().String(),
				user.Role().String(),
				user.Credential().Digest(),
				user.Status().String(),
				callBackAt,
				user.Contributions(),
				user.CreatedAt(),
				user.UpdatedAt(),
			},
		),
	}

	// Use the surrounding transaction if there is one
	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite(mutations)
	}

	// Fallback: standalone mutation
	_, err := r.client.Apply(ctx, mutations)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id types.UserID) (*domain.User, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "Users", spanner.Key{id.String()}, userColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	return scanUser(row)
}

func (r *SpannerRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: `SELECT UserID, Username, Email, Role, PasswordDigest, Status, CallBackAt, Contributions, CreatedAt, UpdatedAt
		      FROM Users@{FORCE_INDEX=UsersByEmail}
		      WHERE Email = @email
		      LIMIT 1`,
		Params: map[string]interface{}{"email": email.String()},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return scanUser(row)
}

func (r *SpannerRepository) Exists(ctx context.Context, email domain.Email) (bool, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL:    `SELECT 1 FROM Users@{FORCE_INDEX=UsersByEmail} WHERE Email = @email LIMIT 1`,
		Params: map[string]interface{}{"email": email.String()},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

func (r *SpannerRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.User, error) {
	filter = filter.Normalize()

	sql := `SELECT UserID, Username, Email, Role, PasswordDigest, Status, CallBackAt, Contributions, CreatedAt, UpdatedAt
	        FROM Users WHERE TRUE`
	params := map[string]interface{}{
		"limit":  int64(filter.Limit),
		"offset": int64(filter.Offset()),
	}

	if filter.Username != "" {
		sql += " AND Username = @username"
		params["username"] = filter.Username
	}
	if filter.Email != "" {
		sql += " AND Email = @email"
		params["email"] = filter.Email
	}
	if filter.Role != "" {
		sql += " AND Role = @role"
		params["role"] = filter.Role.String()
	}
	if filter.Status != "" {
		sql += " AND Status = @status"
		params["status"] = filter.Status.String()
	}
	sql += " ORDER BY CreatedAt LIMIT @limit OFFSET @offset"

	return r.queryUsers(ctx, spanner.Statement{SQL: sql, Params: params})
}

func (r *SpannerRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.User, error) {
	stmt := spanner.Statement{
		SQL: `SELECT UserID, Username, Email, Role, PasswordDigest, Status, CallBackAt, Contributions, CreatedAt, UpdatedAt
		      FROM Users WHERE Status = @status ORDER BY CreatedAt`,
		Params: map[string]interface{}{"status": status.String()},
	}
	return r.queryUsers(ctx, stmt)
}

func (r *SpannerRepository) ListByContributions(ctx context.Context) ([]*domain.User, error) {
	// Secondary sort keeps ties deterministic.
	stmt := spanner.Statement{
		SQL: `SELECT UserID, Username, Email, Role, PasswordDigest, Status, CallBackAt, Contributions, CreatedAt, UpdatedAt
		      FROM Users ORDER BY Contributions DESC, CreatedAt`,
	}
	return r.queryUsers(ctx, stmt)
}

func (r *SpannerRepository) queryUsers(ctx context.Context, stmt spanner.Statement) ([]*domain.User, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var users []*domain.User
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}
		user, err := scanUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func scanUser(row *spanner.Row) (*domain.User, error) {
	var (
		userID, username, email, role, digest, status string
		callBackAt                                    spanner.NullTime
		contributions                                 int64
		createdAt, updatedAt                          time.Time
	)
	if err := row.Columns(&userID, &username, &email, &role, &digest, &status,
		&callBackAt, &contributions, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	id, err := types.ParseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("stored user has invalid ID %q: %w", userID, err)
	}
	name, err := domain.NewUsername(username)
	if err != nil {
		return nil, fmt.Errorf("stored user %s has invalid username: %w", userID, err)
	}
	mail, err := domain.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("stored user %s has invalid email: %w", userID, err)
	}

	var callBack time.Time
	if callBackAt.Valid {
		callBack = callBackAt.Time
	}

	return domain.Reconstitute(
		id,
		name,
		mail,
		domain.Role(role),
		domain.CredentialFromDigest(digest),
		domain.Status(status),
		callBack,
		contributions,
		createdAt,
		updatedAt,
	), nil
}

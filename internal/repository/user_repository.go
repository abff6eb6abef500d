package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"guardianclima/internal/model"
)

const mysqlDuplicateEntry = 1062

var (
	// ErrDuplicateEmail is returned when an insert hits the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicateUsername is returned when an insert hits the unique username index.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UsageFeature names a quota-limited usage counter column on the users table.
type UsageFeature string

const (
	// FeatureOutfit is the AI outfit advice usage counter.
	FeatureOutfit UsageFeature = "ai_outfit_uses"
	// FeatureTravel is the AI travel assistant usage counter.
	FeatureTravel UsageFeature = "ai_travel_uses"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePreferences(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdatePlan(ctx context.Context, id uint, plan string) error
	ConsumeQuota(ctx context.Context, id uint, feature UsageFeature, limit int) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. Unique-index violations are translated to
// sentinels so a registration racing past the service's pre-check still
// surfaces as a conflict, not a generic storage failure.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// translateDuplicate maps MySQL duplicate-entry errors onto the matching
// sentinel by the index name in the message. Other errors pass through.
func translateDuplicate(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return err
	}
	if strings.Contains(mysqlErr.Message, "email") {
		return ErrDuplicateEmail
	}
	if strings.Contains(mysqlErr.Message, "username") {
		return ErrDuplicateUsername
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePreferences applies a partial update of preference columns. The
// map keys are column names.
func (r *userRepository) UpdatePreferences(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) UpdatePlan(ctx context.Context, id uint, plan string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("plan", plan).Error
}

// ConsumeQuota increments the feature counter iff it is still below
// limit, as a single guarded UPDATE. The rows-affected result decides
// allowed versus denied; the statement is atomic per row, so concurrent
// requests for the same user can never push the counter past the limit.
func (r *userRepository) ConsumeQuota(ctx context.Context, id uint, feature UsageFeature, limit int) (bool, error) {
	column := string(feature)
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND "+column+" < ?", id, limit).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

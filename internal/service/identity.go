package service

import (
	"context" // Request scoped contexts
	"fmt"     // Error wrapping
	"strings" // Username trimming

	"event_marketplace/internal/domain" // Importing domain models
	"event_marketplace/internal/events" // Signup events
	"event_marketplace/internal/store"  // Account tables

	"github.com/sirupsen/logrus" // Logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// bcryptCost is lowered by tests
var bcryptCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost) // Hash the password
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil
}

// Signup is the form a user or vendor submits to register
type Signup struct {
	Username string // Unique across all roles
	Password string // Plain text, hashed before storing
	Name     string // Display name
	Email    string // Optional
	Phone    string // Optional
}

// ProfileUpdate changes the editable fields of an account. An empty
// NewPassword keeps the current password.
type ProfileUpdate struct {
	Name        string
	Email       string
	Phone       string
	NewPassword string
}

// Identity owns the admin, vendor and user account tables
type Identity struct {
	base
}

// EnsureAdmin seeds an admin account when no admin exists yet
func (s *Identity) EnsureAdmin(ctx context.Context, username, password string) error {
	if err := required([2]string{"username", username}, [2]string{"password", password}); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *store.State) error {
		if len(st.Admins) > 0 {
			return nil // Already seeded
		}
		if st.UsernameTaken(username) {
			return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, username)
		}
		st.Admins[username] = domain.Account{
			Username: username,
			Password: hash,
			Name:     "System Admin", // Editable later via the profile page
			Role:     domain.RoleAdmin,
		}
		st.Touch(store.TableAdmins)
		logrus.WithField("username", username).Info("Seeded admin account")
		return nil
	})
}

// Authenticate checks credentials against the table of the requested role
func (s *Identity) Authenticate(role domain.Role, username, password string) (domain.Account, error) {
	var (
		acc   domain.Account
		found bool
	)
	s.store.View(func(st *store.State) {
		table, _ := st.AccountTable(role) // Only the requested role's table
		acc, found = table[username]
	})
	if !found || bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)) != nil {
		return domain.Account{}, domain.ErrAuthentication // Same error for unknown user and bad password
	}
	return acc, nil
}

// SignupUser creates a user account and notifies the admins
func (s *Identity) SignupUser(ctx context.Context, in Signup) (domain.Account, error) {
	in.Username = strings.TrimSpace(in.Username) // Usernames never carry padding
	if err := required([2]string{"username", in.Username}, [2]string{"password", in.Password}, [2]string{"name", in.Name}); err != nil {
		return domain.Account{}, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return domain.Account{}, err
	}
	acc := domain.Account{
		Username: in.Username,
		Password: hash,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     domain.RoleUser,
	}
	err = s.store.Update(ctx, func(st *store.State) error {
		if st.UsernameTaken(in.Username) {
			return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, in.Username)
		}
		st.Users[acc.Username] = acc // Users are active immediately
		st.AdminNotifications = append(st.AdminNotifications, domain.AdminNotification{
			ID:        st.NextAdminNotificationID(),
			Kind:      domain.KindUserSignup,
			Username:  in.Username,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			CreatedAt: s.now(),
		})
		st.Touch(store.TableUsers, store.TableAdminNotifications)
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	logrus.WithFields(logrus.Fields{
		"username": acc.Username,
		"role":     acc.Role.String(),
	}).Info("User signed up")
	s.publish(ctx, events.KeyAccountSignup, events.AccountSignup{Username: acc.Username, Role: acc.Role.String(), At: s.now()})
	return acc, nil
}

// SignupVendor records a pending vendor registration in the admin queue.
// The vendor account only exists once an admin approves it.
func (s *Identity) SignupVendor(ctx context.Context, in Signup) (domain.AdminNotification, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := required([2]string{"username", in.Username}, [2]string{"name", in.Name}); err != nil {
		return domain.AdminNotification{}, err
	}
	var n domain.AdminNotification
	err := s.store.Update(ctx, func(st *store.State) error {
		if st.UsernameTaken(in.Username) {
			return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, in.Username)
		}
		n = domain.AdminNotification{
			ID:        st.NextAdminNotificationID(),
			Kind:      domain.KindVendorSignup,
			Username:  in.Username,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			CreatedAt: s.now(),
		}
		st.AdminNotifications = append(st.AdminNotifications, n) // Waits for an admin decision
		st.Touch(store.TableAdminNotifications)
		return nil
	})
	if err != nil {
		return domain.AdminNotification{}, err
	}
	logrus.WithFields(logrus.Fields{
		"username":        n.Username,
		"notification_id": n.ID,
	}).Info("Vendor registration pending approval")
	s.publish(ctx, events.KeyAccountSignup, events.AccountSignup{Username: n.Username, Role: domain.RoleVendor.String(), Pending: true, At: s.now()})
	return n, nil
}

// Account returns the account of a role by username
func (s *Identity) Account(role domain.Role, username string) (domain.Account, error) {
	var (
		acc   domain.Account
		found bool
	)
	s.store.View(func(st *store.State) {
		table, _ := st.AccountTable(role)
		acc, found = table[username]
	})
	if !found {
		return domain.Account{}, fmt.Errorf("%w: account %q", domain.ErrNotFound, username)
	}
	return acc, nil
}

// UpdateProfile edits the caller's own account. Admin accounts carry no phone.
func (s *Identity) UpdateProfile(ctx context.Context, role domain.Role, username string, in ProfileUpdate) (domain.Account, error) {
	if err := required([2]string{"name", in.Name}); err != nil {
		return domain.Account{}, err
	}
	var hash string
	if in.NewPassword != "" {
		h, err := hashPassword(in.NewPassword)
		if err != nil {
			return domain.Account{}, err
		}
		hash = h
	}
	var acc domain.Account
	err := s.store.Update(ctx, func(st *store.State) error {
		table, name := st.AccountTable(role)
		cur, ok := table[username]
		if !ok {
			return fmt.Errorf("%w: account %q", domain.ErrNotFound, username)
		}
		cur.Name = in.Name
		cur.Email = in.Email
		if role != domain.RoleAdmin {
			cur.Phone = in.Phone // Admins have no phone
		}
		if hash != "" {
			cur.Password = hash // Only when a new password was given
		}
		table[username] = cur
		acc = cur
		st.Touch(name)
		return nil
	})
	return acc, err
}

// Users lists user profiles sorted by username
func (s *Identity) Users() []domain.Profile {
	var out []domain.Profile
	s.store.View(func(st *store.State) { out = sortedProfiles(st.Users) })
	return out
}

// Vendors lists vendor profiles sorted by username
func (s *Identity) Vendors() []domain.Profile {
	var out []domain.Profile
	s.store.View(func(st *store.State) { out = sortedProfiles(st.Vendors) })
	return out
}

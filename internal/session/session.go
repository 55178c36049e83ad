// Package session expose l'état de session du visiteur : utilisateur
// connecté et code de réduction actif.
package session

import (
	"context"

	"scoop_storefront/internal/models"

	"github.com/gorilla/sessions"
)

// Name est le nom du cookie de session
const Name = "scoop_session"

const (
	keyUserID       = "user_id"
	keyUserName     = "user_name"
	keyUserEmail    = "user_email"
	keyDiscountCode = "discount_code"
	keyDiscountPct  = "discount_pct"
)

func stringValue(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}

// UserID retourne "" pour un visiteur anonyme
func UserID(s *sessions.Session) string {
	return stringValue(s, keyUserID)
}

func UserName(s *sessions.Session) string {
	return stringValue(s, keyUserName)
}

func UserEmail(s *sessions.Session) string {
	return stringValue(s, keyUserEmail)
}

// discarder : store qui garde l'état côté serveur
type discarder interface {
	Discard(ctx context.Context, id string) error
}

// Regenerate abandonne l'identifiant courant avant un changement de privilège.
// L'ancien état serveur est supprimé, seule la remise est conservée ; le
// store attribue un nouvel identifiant au prochain Save.
func Regenerate(ctx context.Context, s *sessions.Session) error {
	if d, ok := s.Store().(discarder); ok && s.ID != "" {
		if err := d.Discard(ctx, s.ID); err != nil {
			return err
		}
	}

	code, pct := Discount(s)
	for k := range s.Values {
		delete(s.Values, k)
	}
	if code != "" {
		SetDiscount(s, code, pct)
	}
	s.ID = ""
	s.IsNew = true
	return nil
}

// Login attache l'utilisateur à la session
func Login(s *sessions.Session, user *models.User) {
	s.Values[keyUserID] = user.ID.Hex()
	s.Values[keyUserName] = user.Name
	s.Values[keyUserEmail] = user.Email
}

func Discount(s *sessions.Session) (string, float64) {
	pct, _ := s.Values[keyDiscountPct].(float64)
	return stringValue(s, keyDiscountCode), pct
}

func SetDiscount(s *sessions.Session, code string, pct float64) {
	s.Values[keyDiscountCode] = code
	s.Values[keyDiscountPct] = pct
}

func ClearDiscount(s *sessions.Session) {
	delete(s.Values, keyDiscountCode)
	delete(s.Values, keyDiscountPct)
}

// Destroy vide la session et expire le cookie au prochain Save
func Destroy(s *sessions.Session) {
	for k := range s.Values {
		delete(s.Values, k)
	}
	s.Options.MaxAge = -1
}

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

// claims reads exp and role from the backend's access token without verifying it. The
// backend stays the authority; these only bound how long the credential is kept and fill in
// a role the login response left out. Opaque tokens yield zero values.
func claims(token string) (time.Time, models.Role) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return time.Time{}, ""
	}

	var exp time.Time
	if e, err := mc.GetExpirationTime(); err == nil && e != nil {
		exp = e.Time
	}
	return exp, roleClaim(mc)
}

func roleClaim(mc jwt.MapClaims) models.Role {
	var raw []string
	if v, ok := mc["role"].(string); ok {
		raw = append(raw, v)
	}
	switch v := mc["roles"].(type) {
	case []any:
		for _, r := range v {
			if s, ok := r.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = append(raw, v)
	}

	role := models.Role("")
	for _, s := range raw {
		r, err := models.ParseRole(s)
		if err != nil {
			continue
		}
		if r == models.RoleAdmin {
			return r
		}
		role = r
	}
	return role
}

package jwttoken

import (
	authmw "inspectready/pkg/platform/middleware/auth"
)

// Validator adapts the service to the auth middleware's interface so the
// middleware package stays free of JWT types.
func (s *JWTService) Validator() authmw.JWTValidator {
	return validatorFunc(func(token string) (*authmw.JWTClaims, error) {
		claims, err := s.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &authmw.JWTClaims{
			UserID:    claims.UserID,
			CompanyID: claims.CompanyID,
			JTI:       claims.ID,
		}, nil
	})
}

type validatorFunc func(string) (*authmw.JWTClaims, error)

func (f validatorFunc) ValidateToken(token string) (*authmw.JWTClaims, error) {
	return f(token)
}

package tokens

import "context"

// OwnerOf expone el owner actual de un token.
// Se usa desde access y records vía interface local para evitar
// ciclos de imports; siempre re-resuelve, nunca cachea.
func (s *Service) OwnerOf(ctx context.Context, id uint64) (string, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return t.Owner, nil
}

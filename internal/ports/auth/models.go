package auth

// Claims representa la identidad autenticada del caller.
// Address es la dirección de wallet ya verificada aguas arriba;
// el core confía en ella y nunca re-implementa verificación de firmas.
type Claims struct {
	Address string
}

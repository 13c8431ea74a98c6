package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// lookupTimeout bounds the DNS checks so that a slow resolver cannot hold an
// account creation request.
const lookupTimeout = 3 * time.Second

// IsEmailDomainValid reports whether the domain of email resolves to a mail
// exchanger or at least a host.
func IsEmailDomainValid(email string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	return emailDomainResolves(ctx, net.DefaultResolver, email)
}

type hostResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

func emailDomainResolves(ctx context.Context, r hostResolver, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if hosts, err := r.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}
	return false
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// sweepInterval как часто из карты удаляются лимитеры с полным ведром
const sweepInterval = time.Minute

// RateLimiter ограничивает частоту запросов каждого пользователя (token bucket)
// Ставится после Auth: ключ - ID пользователя из контекста.
// Лимитеры с полным ведром раз в sweepInterval удаляются: в карте остаются только
// пользователи, сделавшие запросы за последние burst/rps секунд
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[int64]*rate.Limiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter rps запросов в секунду с запасом burst на пользователя
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[int64]*rate.Limiter),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// allow списывает токен пользователя
func (l *RateLimiter) allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}
	return limiter.AllowN(now, 1)
}

func (l *RateLimiter) sweep(now time.Time) {
	for userID, limiter := range l.limiters {
		if limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, userID)
		}
	}
	l.lastSweep = now
}

// Middleware отвечает 429, если пользователь исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if ok && !l.allow(userID) {
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

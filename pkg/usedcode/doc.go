// Package usedcode provides replay protection for one-time passcodes.
//
// A Store remembers (counter, code, user) triples that were already accepted
// so the same code cannot be used twice by the same user within its window.
//
// Three backends are available:
//
//   - MemoryStore keeps records in an insertion-ordered list plus an index,
//     both under a single mutex. A goroutine evicts records older than the
//     retention age (default 5m) every sweep period (default 60s). Close
//     stops it.
//   - RedisStore shares records across instances with SET NX and a TTL
//     equal to the retention age.
//   - NoopStore never reports a code as used. It is only appropriate when
//     replay is mitigated by other means.
//
// New builds a backend from Config, which LoadConfig reads from the
// USED_CODES_* environment variables.
//
//	store, err := usedcode.New(usedcode.DefaultConfig(), nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// The retention age must be at least as long as the verification window
// (interval × (2×window+1)); evicting earlier re-opens the window for replay.
package usedcode

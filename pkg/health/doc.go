// Package health runs named probes against backing stores and aggregates
// the results into a [Report].
//
//	report := health.Run(ctx, health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second))
//
//	if err := report.Err(); err != nil {
//		// ErrCheckFailed joined with one error per failing probe
//	}
//
// The report marshals to JSON:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy", "duration": "2ms"},
//	    "redis": {"status": "unhealthy", "error": "connection refused", "duration": "1ms"}
//	  }
//	}
package health

// Package specerr defines the failure taxonomy shared by the spectrum access
// layer, the running machinery and the process bootstrap.
//
// Every failure is surfaced immediately. Callers match categories with
// errors.Is against the sentinels below; the concrete *ParamError carries the
// offending key, indices and operation so a log line is enough to locate the
// mistake.
package specerr

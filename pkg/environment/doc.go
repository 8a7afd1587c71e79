// Package environment detects the application environment.
//
// The environment is read from APP_ENV (falling back to GO_ENV) each time it
// is requested, so tests can switch it with t.Setenv:
//
//	if environment.IsDevelopment() {
//	    // print instead of calling external services
//	}
//
// Unknown values are treated as Development.
package environment

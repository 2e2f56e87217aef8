// Package analyzer inspects parsed request descriptors without performing
// any I/O. It decomposes the target URL, summarizes headers and body,
// classifies the authentication scheme, and grades the request's security
// posture.
package analyzer

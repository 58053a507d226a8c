// Package queueapi exposes the task-queue core over HTTP.
//
// Service is the validating facade between transport and core: it resolves
// queue identifiers, rejects invalid arguments, and translates absence into
// the package's sentinel errors. Router maps those errors onto status codes:
//
//	invalid argument  -> 400, plain-text message
//	not found         -> 404, plain-text message
//	empty dequeue     -> 204, no body
//
// Successful responses carry JSON; see the route table in Router.
package queueapi

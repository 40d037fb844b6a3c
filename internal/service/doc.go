// Package service provides the application-level operations exposed to the
// HTTP layer: account signup/login and the task operations, including the
// cache-aside read path and the synchronous cache invalidation that keeps
// listings consistent with mutations.
package service

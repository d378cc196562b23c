// Package redis implements the coordination ports on Redis so that several
// replicas share in-flight markers and pending rejections.
//
// Keys:
//
//	fulfillment:inflight:{itemId}   holder token, PX ttl
//	fulfillment:rejection:{itemId}  JSON PendingRejection, PX ttl
package redis

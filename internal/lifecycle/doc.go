// Package lifecycle holds the task and offer state machines and the
// in-memory acceptance resolver.
//
// Nothing here touches storage. Callers load a task's sub-graph, run the
// transition functions against it and persist whatever they return, all
// while holding the task's exclusive lock.
//
//	Task:  open --accept--> in-progress --complete--> completed
//	Offer: pending --accept--> accepted
//	       pending --reject--> rejected
package lifecycle

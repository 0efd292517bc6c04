/*
Package eventstack provides a generic, concurrency-safe LIFO container
whose bulk operations run through a parallel engine.

# Backing strategies

Two interchangeable backings are selected at construction:

  - The default mutex backing keeps the elements in a growable slice
    behind a reader/writer lock. Concurrent readers proceed in parallel;
    a mutation excludes everything else, and bulk operations hold the
    write lock for their full duration.
  - [WithLockFree] selects a Treiber stack: Push and Pop are CAS retry
    loops that never block, and [EventStack.Size] reads an eventually
    consistent counter maintained separately from the structure.

In lock-free mode a mutating bulk operation (Filter, SortFunc, Transform,
Reverse, Deserialize, RemoveDuplicates) is a drain/refill sequence that is
not atomic as a whole: pushes and pops that land inside the window are
lost. This window is part of the lock-free contract; integrators that need
compound atomicity opt in with [WithCompoundLock], which gates bulk
operations exclusively against single-element ones.

# Serialization

Serialize joins the elements, oldest first, with ';' and a trailing ';':

	10;20;30;

There is no escaping: an element whose text form contains ';' corrupts the
round-trip. The format is frozen for wire compatibility.

# Errors

Bulk operations fail with a *StackError naming the operation and wrapping
the cause; codec failures additionally wrap a *SerializationError. Pop,
Peek and Find never fail, reporting absence with a false second return.
*/
package eventstack

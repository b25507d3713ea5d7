package reservation

import "github.com/redis/go-redis/v9"

// Script result codes.
const (
	codeCapacity = -1 // hard ceiling would be exceeded
	codeConflict = 0  // a seat is taken (hold) or owned by someone else (release)
	codeOK       = 1
	codeNotHeld  = 2 // a seat has no owner (release)
)

// holdScript locks every seat for one claimant or nothing at all.  Redis
// does not undo the writes of a failing script, so the counter is checked
// and incremented before any seat key is written.
//
// KEYS[1] = reserved counter, KEYS[2] = status flag, KEYS[3..] = seat locks
// ARGV[1] = claimant, ARGV[2] = capacity, ARGV[3] = "1" to enforce a hard ceiling
//
// Returns {code, index}; index is the 1-based position of the offending seat.
var holdScript = redis.NewScript(`
local n = #KEYS - 2
for i = 3, #KEYS do
    if redis.call('EXISTS', KEYS[i]) == 1 then
        return {0, i - 2}
    end
end

local raw = redis.call('GET', KEYS[1])
if raw and not string.match(raw, '^%-?%d+$') then
    return redis.error_reply('ERR reserved counter is not an integer')
end
local current = tonumber(raw or '0')
local capacity = tonumber(ARGV[2])
if ARGV[3] == '1' and current + n > capacity then
    return {-1, 0}
end

local count = redis.call('INCRBY', KEYS[1], n)
for i = 3, #KEYS do
    redis.call('SET', KEYS[i], ARGV[1])
end
if count >= capacity then
    redis.call('SET', KEYS[2], 'CLOSED')
end
return {1, 0}
`)

// releaseScript removes locks owned by one claimant, all or nothing.  As in
// holdScript the counter is validated and written before the seat keys.
//
// KEYS[1] = reserved counter, KEYS[2..] = seat locks
// ARGV[1] = claimant
var releaseScript = redis.NewScript(`
for i = 2, #KEYS do
    local owner = redis.call('GET', KEYS[i])
    if not owner then
        return {2, i - 1}
    end
    if owner ~= ARGV[1] then
        return {0, i - 1}
    end
end

local raw = redis.call('GET', KEYS[1])
if raw and not string.match(raw, '^%-?%d+$') then
    return redis.error_reply('ERR reserved counter is not an integer')
end
redis.call('DECRBY', KEYS[1], #KEYS - 1)
for i = 2, #KEYS do
    redis.call('DEL', KEYS[i])
end
return {1, 0}
`)

// reconcileScript writes the desired flag only when it differs from the
// cached one.  A PLAYING match whose counter already reached capacity stays
// CLOSED.
//
// KEYS[1] = status flag, KEYS[2] = reserved counter
// ARGV[1] = desired flag, ARGV[2] = capacity
//
// Returns 1 when the flag was written, 0 otherwise.
var reconcileScript = redis.NewScript(`
local desired = ARGV[1]
if desired == 'OPEN' then
    local count = tonumber(redis.call('GET', KEYS[2]) or '0')
    if count >= tonumber(ARGV[2]) then
        desired = 'CLOSED'
    end
end

if redis.call('GET', KEYS[1]) == desired then
    return 0
end
redis.call('SET', KEYS[1], desired)
return 1
`)

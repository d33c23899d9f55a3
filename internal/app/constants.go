package app

// PlayersPerMatch is the fixed table size. Coinche is always four-handed,
// two teams of two; keep this centralized so the hosting layer and bot
// backfill agree on when a table is complete.
const PlayersPerMatch = 4

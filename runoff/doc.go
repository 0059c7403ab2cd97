// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package runoff tallies ranked ballots by instant runoff.

# Elections

An Election owns a fixed list of candidates and the ballots cast for them:

	e, err := runoff.NewElection(runoff.DefaultConfig(), []string{"Alice", "Bob", "Charlie"})
	if err != nil {
		return err
	}
	err = e.Cast([]string{"Bob", "Alice", "Charlie"})

Every ballot ranks every candidate exactly once. Cast rejects unknown names,
repeated names, short ballots and ballots past Config.MaxVoters, and records
nothing when it does.

# Rounds

Each round:

 1. Tabulate credits every ballot to its highest-ranked candidate still standing.
 2. The first candidate (in input order) with more than half of the ballots wins.
 3. Otherwise, if every remaining candidate has the minimum, all of them tie.
 4. Otherwise every candidate at the minimum is eliminated and votes reset.

Run repeats rounds until the election is decided or tied and returns an
Outcome holding the winners and the per-round history:

	out := e.Run()
	for _, name := range out.Winners {
		fmt.Println(name)
	}

Every non-final round eliminates at least one candidate and never all of
them, so Run always terminates.

# Limits

DefaultConfig allows 9 candidates and 100 voters. Exceeding either returns
ErrTooManyCandidates or ErrTooManyVoters.
*/
package runoff

package usecase

import (
	"context"

	"surety-service/internal/domain/repository"
	"surety-service/internal/ledger"
	"surety-service/pkg/logger"
)

// CheckJournalAlignment compares the rehydrated ledger's sequence with the
// journal's last recorded sequence and reports how many transactions the
// journal holds beyond the snapshot. A positive lag means the process died
// between journaling and snapshotting; those transactions are durable in
// the journal but absent from the serving state until replayed.
func CheckJournalAlignment(ctx context.Context, st *ledger.Ledger, journal repository.JournalRepository, log logger.Logger) (uint64, error) {
	journalSeq, err := journal.LastSeq(ctx)
	if err != nil {
		return 0, err
	}

	switch {
	case journalSeq > st.Seq:
		log.Warn("Journal is ahead of the ledger snapshot",
			"snapshotSeq", st.Seq, "journalSeq", journalSeq, "missing", journalSeq-st.Seq)
		return journalSeq - st.Seq, nil
	case journalSeq < st.Seq:
		// Journal writes are logged, not rolled back, so a failed append
		// can leave the journal behind. The snapshot remains authoritative.
		log.Warn("Journal is behind the ledger snapshot",
			"snapshotSeq", st.Seq, "journalSeq", journalSeq)
		return 0, nil
	default:
		log.Info("Journal and ledger snapshot are aligned", "seq", st.Seq)
		return 0, nil
	}
}

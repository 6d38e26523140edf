package shell

const helpText = `countsim - card counting bankroll simulator

Commands:
  set <param> <value>     set a simulation parameter
                          (initial-bankroll, min-bet, spread, sims,
                          hands, decks, model, threads)
  show                    show current parameters
  sim [options]           run a batch of simulations; options override
                          parameters for this and later batches:
                            -sims N -hands N -decks N -spread N
                            -bankroll X -minbet X -model counting|flat
                            -threads N
  hist                    histogram of final bankrolls from last batch
  export <file.csv>       write last batch's padded trajectory matrix
  seeds generate <n>      make n deterministic trajectory seeds
  seeds save <file>       save current seeds
  seeds load <file>       load seeds for exact batch replay
  seeds clear             drop loaded seeds
  help                    this message
  exit                    leave the shell
`

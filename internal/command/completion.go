package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for blogctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_blogctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "signup login logout uq ue pq pn pe pd completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --local --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    signup)
      local opts="--host -h --username -u --email"
            ;;
    login)
      local opts="--host -h --username -u"
            ;;
        logout)
      local opts="--host -h"
            ;;
        uq)
      local opts="$common --schema --host -h --id"
            ;;
        ue)
      local opts="$common --schema --host -h --username -u --email"
            ;;
        pq)
      local opts="$common --schema --host -h --id --user --limit -l"
            ;;
        pn)
      local opts="$common --schema --host -h --title --content"
            ;;
        pe)
      local opts="$common --schema --host -h --id --title --content --diff --force"
            ;;
        pd)
      local opts="--host -h --id --force"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _blogctl blogctl
`

const zshCompletionScript = `#compdef blogctl

_blogctl() {
  local -a cmds
  cmds=(
    'signup:create a new account'
    'login:log in to the blog'
    'logout:log out of the blog'
    'uq:user query (who am I)'
    'ue:user edit'
    'pq:post query'
    'pn:post new'
    'pe:post edit'
    'pd:post delete'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--local[render timestamps in local time]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'blogctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    signup)
      _arguments -C \
        '(-h --host)'{-h,--host}'[base URL]' \
        '(-u --username)'{-u,--username}'[username]' \
        '--email[email address]':email
      ;;
    login)
      _arguments -C \
        '(-h --host)'{-h,--host}'[base URL]' \
        '(-u --username)'{-u,--username}'[username]'
      ;;
    logout)
      _arguments -C \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    uq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    ue)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-u --username)'{-u,--username}'[replacement username]' \
        '--email[replacement email]':email \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    pq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--id[post id]':id \
        '--user[author id]':user \
        '(-l --limit)'{-l,--limit}'[limit results]':limit \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    pn)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--title[post title]':title \
        '--content[post body]':content \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    pe)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--id[post id]':id \
        '--title[replacement title]':title \
        '--content[replacement body]':content \
        '--diff[preview the change]' \
        '--force[skip confirmation]' \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    pd)
      _arguments -C \
        '--id[post id]':id \
        '--force[skip confirmation]' \
        '(-h --host)'{-h,--host}'[base URL]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _blogctl blogctl blogctlgo
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: blogctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "blogctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}

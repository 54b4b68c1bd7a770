package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/srediag/shmopen/pkg/shm"
)

func parsePerm(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("perm %q is not octal: %w", s, err)
	}
	if v&^0o777 != 0 {
		return 0, fmt.Errorf("perm %q has bits outside 0777", s)
	}
	return os.FileMode(v), nil
}

func getCmdCreate(gs *globalState) *cobra.Command {
	var (
		size      int64
		perm      string
		exclusive bool
	)
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Open or create a shared memory object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			mode, err := parsePerm(perm)
			if err != nil {
				return err
			}
			flag := shm.Create | shm.ReadWrite
			if exclusive {
				flag |= shm.Exclusive
			}
			f, err := shm.OpenFile(name, flag, mode)
			if err != nil {
				return err
			}
			defer f.Close()

			if size > 0 {
				if err := f.Truncate(size); err != nil {
					return fmt.Errorf("truncate %s: %w", name, err)
				}
			}
			st, err := f.Stat()
			if err != nil {
				return err
			}
			gs.logger.WithFields(logrus.Fields{"name": name, "flag": flag, "size": st.Size()}).Info("opened")
			fmt.Fprintf(gs.stdout, "%s size=%d mode=%s\n", name, st.Size(), st.Mode().Perm())
			return nil
		},
	}
	cmd.Flags().Int64Var(&size, "size", 0, "truncate the object to this many bytes")
	cmd.Flags().StringVar(&perm, "perm", strconv.FormatUint(uint64(gs.cfg.Perm), 8), "octal permission bits applied on creation")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "fail if the object already exists")
	return cmd
}

func getCmdOpen(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "open NAME",
		Short: "Open an existing shared memory object and print its size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := shm.OpenFile(args[0], shm.ReadOnly, 0)
			if err != nil {
				return err
			}
			defer f.Close()
			st, err := f.Stat()
			if err != nil {
				return err
			}
			fmt.Fprintf(gs.stdout, "%s size=%d mode=%s\n", args[0], st.Size(), st.Mode().Perm())
			return nil
		},
	}
}

func getCmdUnlink(gs *globalState) *cobra.Command {
	var ifExists bool
	cmd := &cobra.Command{
		Use:   "unlink NAME...",
		Short: "Remove shared memory objects from the namespace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, finish, err := newNamespace(gs)
			if err != nil {
				return err
			}
			defer finish()
			for _, name := range args {
				err := ns.Unlink(cmd.Context(), name)
				if ifExists && shm.KindOf(err) == shm.KindNotFound {
					continue
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifExists, "if-exists", false, "do not fail when a name is absent")
	return cmd
}

func getCmdExists(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "exists NAME",
		Short: "Exit 0 if the object exists, 1 if not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := shm.Exists(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(gs.stdout, "no")
				return exitCode(1)
			}
			fmt.Fprintln(gs.stdout, "yes")
			return nil
		},
	}
}
